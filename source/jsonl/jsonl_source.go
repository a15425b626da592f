package jsonl

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pierrec/lz4"
	"github.com/zeuson0/fedlearner"
	"github.com/zeuson0/fedlearner/filelist"
	"github.com/zeuson0/fedlearner/visitor"
)

// SourceConf configures a JSONL Source
type SourceConf struct {
	Comment       rune   // Lines beginning with the comment character are ignored. Defaults to no comment character.
	MaxBufferSize int    // Maximum size in bytes of the buffer used to read lines from the file
	LZ4Suffix     string // Files whose path ends with this suffix are lz4 decompressed. Defaults to .lz4
}

// Source opens JSON lines files from the local filesystem
type Source struct {
	conf *SourceConf
}

// CreateSource returns a new JSONL Source
func CreateSource(conf *SourceConf) *Source {
	if conf == nil {
		conf = &SourceConf{}
	}
	if conf.MaxBufferSize == 0 {
		conf.MaxBufferSize = bufio.MaxScanTokenSize
	}
	if conf.LZ4Suffix == "" {
		conf.LZ4Suffix = ".lz4"
	}
	return &Source{conf: conf}
}

// CreateVisitor returns a Visitor over the given JSON lines files
func CreateVisitor(files *filelist.List, sourceConf *SourceConf, conf *visitor.Conf) (*visitor.Engine, error) {
	return visitor.Create(files, CreateSource(sourceConf), conf)
}

// Open opens a JSON lines file and counts its rows. The row count requires a full scan of
// the file, after which it is read again from the beginning.
func (s *Source) Open(file fedlearner.FileDescriptor, batchSize int, columns []string) (fedlearner.BatchReader, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return nil, err
	}
	compressed := strings.HasSuffix(file.Path, s.conf.LZ4Suffix)
	numRows, err := s.countRows(s.decode(f, compressed))
	if err != nil {
		return nil, closeOnError(f, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, closeOnError(f, err)
	}
	return &batchReader{
		source:    s,
		file:      f,
		scanner:   s.scanner(s.decode(f, compressed)),
		numRows:   numRows,
		batchSize: batchSize,
		columns:   columns,
	}, nil
}

func (s *Source) decode(r io.Reader, compressed bool) io.Reader {
	if compressed {
		return lz4.NewReader(r)
	}
	return r
}

func (s *Source) scanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), s.conf.MaxBufferSize)
	return scanner
}

// skip returns true for lines which do not hold a row
func (s *Source) skip(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) == 0 {
		return true
	}
	return s.conf.Comment != 0 && strings.HasPrefix(trimmed, string(s.conf.Comment))
}

func (s *Source) countRows(r io.Reader) (int64, error) {
	scanner := s.scanner(r)
	var n int64
	for scanner.Scan() {
		if !s.skip(scanner.Text()) {
			n++
		}
	}
	return n, scanner.Err()
}

func closeOnError(f *os.File, err error) error {
	if cerr := f.Close(); cerr != nil {
		return multierror.Append(err, cerr)
	}
	return err
}
