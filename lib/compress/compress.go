/*package compress handles the archive formats that catalog segment files can
be stored in. A compressed segment keeps its original name with a suffix
appended:

   group_tab_004.3.zst
   group_tab_004.3.lz4
   group_tab_004.3.gz

Segments are small enough to be decompressed into RAM in one go.
*/
package compress

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/DataDog/zstd"
	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"
)

// Method is a flag representing a compression method.
type Method int
const (
	None Method = iota
	Zstd
	LZ4
	Gzip
)

// Methods lists every compression method in the order that Find looks for
// them.
var Methods = []Method{ Zstd, LZ4, Gzip }

// Suffix returns the file name suffix used for the method.
func (m Method) Suffix() string {
	switch m {
	case None: return ""
	case Zstd: return ".zst"
	case LZ4: return ".lz4"
	case Gzip: return ".gz"
	}
	panic(fmt.Sprintf("Internal error: unrecognized compression method %d.",
		int(m)))
}

func (m Method) String() string {
	switch m {
	case None: return "none"
	case Zstd: return "zstd"
	case LZ4: return "lz4"
	case Gzip: return "gzip"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// Find returns the name and method of a compressed version of fileName. ok
// is false if no compressed version exists.
func Find(fileName string) (name string, m Method, ok bool) {
	for _, m := range Methods {
		name := fileName + m.Suffix()
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			return name, m, true
		}
	}
	return "", None, false
}

// ReadFile reads and decompresses a file compressed with the given method.
func ReadFile(fileName string, m Method) ([]byte, error) {
	raw, err := os.ReadFile(fileName)
	if err != nil { return nil, err }
	return Decompress(raw, m)
}

// Compress compresses data with the given method.
func Compress(data []byte, m Method) ([]byte, error) {
	switch m {
	case None:
		return data, nil
	case Zstd:
		return zstd.Compress(nil, data)
	case LZ4:
		buf := &bytes.Buffer{ }
		wr := lz4.NewWriter(buf)
		if _, err := wr.Write(data); err != nil { return nil, err }
		if err := wr.Close(); err != nil { return nil, err }
		return buf.Bytes(), nil
	case Gzip:
		buf := &bytes.Buffer{ }
		wr := gzip.NewWriter(buf)
		if _, err := wr.Write(data); err != nil { return nil, err }
		if err := wr.Close(); err != nil { return nil, err }
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("Unrecognized compression method %d.", int(m))
}

// Decompress decompresses data which was compressed with the given method.
func Decompress(data []byte, m Method) ([]byte, error) {
	switch m {
	case None:
		return data, nil
	case Zstd:
		return zstd.Decompress(nil, data)
	case LZ4:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	case Gzip:
		rd, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil { return nil, err }
		defer rd.Close()
		return io.ReadAll(rd)
	}
	return nil, fmt.Errorf("Unrecognized compression method %d.", int(m))
}
