package visitor

import (
	goerrors "errors"
	"fmt"
	"io"

	"github.com/gofrs/uuid"
	"github.com/zeuson0/fedlearner"
	errors "github.com/zeuson0/fedlearner/errors"
	"github.com/zeuson0/fedlearner/filelist"
	"github.com/zeuson0/fedlearner/logging"
	"go.uber.org/zap"
)

var _ fedlearner.Visitor = (*Engine)(nil)

// Engine is a Visitor over a filelist.List. It is single-use: once the traversal ends it
// must be recreated to start over. Engines are not safe for concurrent use; run one Engine
// per shard of files instead.
type Engine struct {
	id     string
	conf   Conf
	opener fedlearner.FileOpener
	cursor *filelist.Cursor
	log    *zap.Logger

	state  State
	file   fedlearner.FileDescriptor
	reader fedlearner.BatchReader
	meta   *fedlearner.FileMetadata

	batchIdx     int64 // across the whole traversal
	currentBatch int64 // within the current file
	currentRow   int64 // within the current file
	fullBatches  int64
	hasRemainder bool

	endListeners []func()
}

// Create returns a new Engine which will read files through opener
func Create(files *filelist.List, opener fedlearner.FileOpener, conf *Conf) (*Engine, error) {
	if conf == nil {
		conf = &Conf{}
	}
	if err := conf.validate(files); err != nil {
		return nil, err
	}
	if opener == nil {
		return nil, errors.ConfigurationError{Err: fmt.Errorf("file opener is nil")}
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	e := &Engine{
		id:           id.String(),
		conf:         *conf,
		opener:       opener,
		cursor:       files.Cursor(),
		state:        Idle,
		endListeners: []func(){},
	}
	e.log = logging.OrNop(conf.Logger).With(zap.String("pass", e.id))
	return e, nil
}

// ID returns the identifier of this traversal pass
func (e *Engine) ID() string {
	return e.id
}

// State returns the current State of this Engine
func (e *Engine) State() State {
	return e.state
}

// Metadata returns the metadata of the file currently being read, or nil if no file is open
func (e *Engine) Metadata() *fedlearner.FileMetadata {
	return e.meta
}

// OnEnd registers a listener which fires when this Engine runs out of files
func (e *Engine) OnEnd(onEnd func()) {
	e.endListeners = append(e.endListeners, onEnd)
}

// HasNext returns false once the traversal has ended. Next may still report
// NoMoreBatchesError after HasNext returns true, if only exhausted files remain.
func (e *Engine) HasNext() bool {
	return e.state != Done
}

// Next returns the next BatchGroup and its BatchInfo, crossing file boundaries as needed.
// It returns errors.NoMoreBatchesError when every file has been consumed. Any other error is
// fatal: the Engine releases its file and every later call reports the end of the traversal.
func (e *Engine) Next() (fedlearner.BatchGroup, fedlearner.BatchInfo, error) {
	for {
		switch e.state {
		case Done:
			return nil, fedlearner.BatchInfo{}, errors.NoMoreBatchesError{}
		case Idle, FileExhausted:
			if err := e.openNextFile(); err != nil {
				return e.abort(err)
			}
			continue
		}

		e.state = Advancing
		batch, err := e.reader.NextBatch()
		if goerrors.Is(err, io.EOF) {
			if e.currentRow < e.meta.NumRows {
				return e.abort(e.readError(fmt.Errorf("file ended after %d of %d rows", e.currentRow, e.meta.NumRows), e.batchIdx+1))
			}
			e.state = FileExhausted
			continue
		} else if err != nil {
			return e.abort(e.readError(err, e.batchIdx+1))
		}
		e.batchIdx++
		e.currentBatch++
		e.currentRow += int64(batch.NumRows())
		group := fedlearner.BatchGroup{batch}

		// pull the trailing remainder along with the last full-sized batch
		if e.conf.ConsumeRemainder && e.hasRemainder && e.currentBatch == e.fullBatches {
			remainder, err := e.reader.NextBatch()
			if goerrors.Is(err, io.EOF) {
				err = fmt.Errorf("file ended before its remainder of %d rows", e.meta.NumRows-e.currentRow)
			}
			if err != nil {
				return e.abort(e.readError(err, e.batchIdx))
			}
			e.currentRow += int64(remainder.NumRows())
			group = append(group, remainder)
		}

		if e.currentRow > e.meta.NumRows {
			return e.abort(e.readError(fmt.Errorf("read %d rows from a file with %d rows", e.currentRow, e.meta.NumRows), e.batchIdx))
		}
		info := fedlearner.BatchInfo{
			Finished: e.currentRow == e.meta.NumRows,
			FileIdx:  e.file.Index,
			BatchIdx: e.batchIdx,
		}
		if info.Finished {
			e.log.Debug("finished file",
				zap.Int64("file_idx", e.file.Index),
				zap.Int64("batch_idx", e.batchIdx),
				zap.Int64("rows", e.currentRow))
		}
		e.state = FileOpen
		return group, info, nil
	}
}

// Close releases the currently open file, if any, and ends the traversal
func (e *Engine) Close() error {
	e.state = Done
	e.meta = nil
	return e.closeReader()
}

// openNextFile moves to the next file of the list, or to Done if there is none
func (e *Engine) openNextFile() error {
	if err := e.closeReader(); err != nil {
		e.log.Warn("couldn't close file", zap.String("path", e.file.Path), zap.Error(err))
	}
	e.meta = nil
	if !e.cursor.HasNext() {
		e.state = Done
		e.log.Info("visited all files", zap.Int("files", e.cursor.Position()), zap.Int64("batches", e.batchIdx))
		for _, l := range e.endListeners {
			l()
		}
		e.endListeners = []func(){}
		return nil
	}
	e.file = e.cursor.Next()
	reader, err := e.opener.Open(e.file, e.conf.BatchSize, e.conf.Columns)
	if err != nil {
		return errors.FileOpenError{Index: e.file.Index, Path: e.file.Path, Err: err}
	}
	meta := reader.Metadata()
	if meta.NumRows < 0 {
		if cerr := reader.Close(); cerr != nil {
			e.log.Warn("couldn't close file", zap.String("path", e.file.Path), zap.Error(cerr))
		}
		return errors.FileOpenError{Index: e.file.Index, Path: e.file.Path, Err: fmt.Errorf("negative row count %d", meta.NumRows)}
	}
	e.reader = reader
	e.meta = &meta
	e.currentRow = 0
	e.currentBatch = 0
	batchSize := int64(e.conf.BatchSize)
	e.fullBatches = meta.NumRows / batchSize
	e.hasRemainder = meta.NumRows%batchSize > 0
	e.state = FileOpen
	e.log.Debug("opened file",
		zap.Int64("file_idx", e.file.Index),
		zap.String("path", e.file.Path),
		zap.Int64("rows", meta.NumRows))
	return nil
}

func (e *Engine) readError(err error, batchIdx int64) error {
	return errors.BatchReadError{
		Index:    e.file.Index,
		Path:     e.file.Path,
		BatchIdx: batchIdx,
		Err:      err,
	}
}

// abort ends the traversal without notifying end listeners
func (e *Engine) abort(err error) (fedlearner.BatchGroup, fedlearner.BatchInfo, error) {
	e.log.Error("traversal failed", zap.Error(err))
	if cerr := e.Close(); cerr != nil {
		e.log.Warn("couldn't close file", zap.String("path", e.file.Path), zap.Error(cerr))
	}
	return nil, fedlearner.BatchInfo{}, err
}

func (e *Engine) closeReader() error {
	if e.reader == nil {
		return nil
	}
	err := e.reader.Close()
	e.reader = nil
	return err
}
