package wire

import (
	"fmt"
	"io"

	"github.com/zeuson0/fedlearner"
	"github.com/zeuson0/fedlearner/filelist"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	batchInfoFinished protowire.Number = 1
	batchInfoFileIdx  protowire.Number = 2
	batchInfoBatchIdx protowire.Number = 3

	fileInfoFiles protowire.Number = 1
	fileInfoIdx   protowire.Number = 2
)

// AppendBatchInfo appends the encoding of info to b. Zero-valued fields are omitted.
func AppendBatchInfo(b []byte, info fedlearner.BatchInfo) []byte {
	if info.Finished {
		b = protowire.AppendTag(b, batchInfoFinished, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(info.Finished))
	}
	if info.FileIdx != 0 {
		b = protowire.AppendTag(b, batchInfoFileIdx, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(info.FileIdx))
	}
	if info.BatchIdx != 0 {
		b = protowire.AppendTag(b, batchInfoBatchIdx, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(info.BatchIdx))
	}
	return b
}

// MarshalBatchInfo encodes info
func MarshalBatchInfo(info fedlearner.BatchInfo) []byte {
	return AppendBatchInfo(nil, info)
}

// UnmarshalBatchInfo decodes a BatchInfo. Unknown fields are skipped.
func UnmarshalBatchInfo(b []byte) (fedlearner.BatchInfo, error) {
	var info fedlearner.BatchInfo
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return info, protowire.ParseError(n)
		}
		b = b[n:]
		if typ == protowire.VarintType && num >= batchInfoFinished && num <= batchInfoBatchIdx {
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return info, protowire.ParseError(n)
			}
			b = b[n:]
			switch num {
			case batchInfoFinished:
				info.Finished = protowire.DecodeBool(v)
			case batchInfoFileIdx:
				info.FileIdx = int64(v)
			case batchInfoBatchIdx:
				info.BatchIdx = int64(v)
			}
			continue
		}
		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return info, protowire.ParseError(n)
		}
		b = b[n:]
	}
	return info, nil
}

// WriteDelimitedBatchInfo writes info to w, prefixed with its length as a varint
func WriteDelimitedBatchInfo(w io.Writer, info fedlearner.BatchInfo) error {
	_, err := w.Write(protowire.AppendBytes(nil, MarshalBatchInfo(info)))
	return err
}

// ReadDelimitedBatchInfo decodes the first length-prefixed BatchInfo of b, returning the
// number of bytes consumed
func ReadDelimitedBatchInfo(b []byte) (fedlearner.BatchInfo, int, error) {
	msg, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return fedlearner.BatchInfo{}, 0, protowire.ParseError(n)
	}
	info, err := UnmarshalBatchInfo(msg)
	return info, n, err
}

// MarshalFileInfoList encodes the paths and indices of files. Indices are packed.
func MarshalFileInfoList(files *filelist.List) []byte {
	var b []byte
	for _, path := range files.Paths() {
		b = protowire.AppendTag(b, fileInfoFiles, protowire.BytesType)
		b = protowire.AppendString(b, path)
	}
	if files.Len() > 0 {
		var packed []byte
		for _, idx := range files.Indices() {
			packed = protowire.AppendVarint(packed, uint64(idx))
		}
		b = protowire.AppendTag(b, fileInfoIdx, protowire.BytesType)
		b = protowire.AppendBytes(b, packed)
	}
	return b
}

// UnmarshalFileInfoList decodes a file list. Both packed and unpacked indices are accepted.
func UnmarshalFileInfoList(b []byte) (*filelist.List, error) {
	var paths []string
	var indices []int64
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == fileInfoFiles && typ == protowire.BytesType:
			path, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			paths = append(paths, path)
			b = b[n:]
		case num == fileInfoIdx && typ == protowire.BytesType:
			packed, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			for len(packed) > 0 {
				v, m := protowire.ConsumeVarint(packed)
				if m < 0 {
					return nil, protowire.ParseError(m)
				}
				indices = append(indices, int64(v))
				packed = packed[m:]
			}
			b = b[n:]
		case num == fileInfoIdx && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			indices = append(indices, int64(v))
			b = b[n:]
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	if len(paths) != len(indices) {
		return nil, fmt.Errorf("file list has %d files but %d indices", len(paths), len(indices))
	}
	files := make([]fedlearner.FileDescriptor, len(paths))
	for i := range paths {
		files[i] = fedlearner.FileDescriptor{Index: indices[i], Path: paths[i]}
	}
	return filelist.Create(files...), nil
}
