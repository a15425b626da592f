package fedlearner

// FileDescriptor is one entry of an ordered file list. Index is assigned by the
// caller, need not be contiguous or zero-based, and is reported back verbatim as
// BatchInfo.FileIdx.
type FileDescriptor struct {
	Index int64
	Path  string
}

// FileMetadata describes a file which has been opened for reading
type FileMetadata struct {
	NumRows int64 // NumRows is the total number of rows in the file
}
