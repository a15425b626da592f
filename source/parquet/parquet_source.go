package parquet

import (
	"os"

	"github.com/hashicorp/go-multierror"
	pq "github.com/parquet-go/parquet-go"
	"github.com/zeuson0/fedlearner"
	"github.com/zeuson0/fedlearner/filelist"
	"github.com/zeuson0/fedlearner/visitor"
)

// SourceConf configures a Parquet Source
type SourceConf struct {
	SkipPageIndex    bool // Do not load column and offset indexes when opening files. Defaults to false.
	SkipBloomFilters bool // Do not load bloom filters when opening files. Defaults to false.
}

// Source opens Parquet files from the local filesystem
type Source struct {
	conf *SourceConf
}

// CreateSource returns a new Parquet Source
func CreateSource(conf *SourceConf) *Source {
	if conf == nil {
		conf = &SourceConf{}
	}
	return &Source{conf: conf}
}

// CreateVisitor returns a Visitor over the given Parquet files
func CreateVisitor(files *filelist.List, conf *visitor.Conf) (*visitor.Engine, error) {
	return visitor.Create(files, CreateSource(nil), conf)
}

// Open opens a Parquet file and reads its footer
func (s *Source) Open(file fedlearner.FileDescriptor, batchSize int, columns []string) (fedlearner.BatchReader, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		return nil, closeOnError(f, err)
	}
	pf, err := pq.OpenFile(f, info.Size(),
		pq.SkipPageIndex(s.conf.SkipPageIndex),
		pq.SkipBloomFilters(s.conf.SkipBloomFilters),
	)
	if err != nil {
		return nil, closeOnError(f, err)
	}
	return &batchReader{
		file:      f,
		pf:        pf,
		batchSize: batchSize,
		columns:   columns,
	}, nil
}

func closeOnError(f *os.File, err error) error {
	if cerr := f.Close(); cerr != nil {
		return multierror.Append(err, cerr)
	}
	return err
}
