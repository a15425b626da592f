// Package wire encodes the progress messages exchanged with the data-join coordinator.
// Messages use the protobuf wire format and are field-compatible with the transmitter
// service definitions:
//
//	message BatchInfo {
//	  bool finished = 1;
//	  int64 file_idx = 2;
//	  int64 batch_idx = 3;
//	}
//
//	message FileInfoList {
//	  repeated string files = 1;
//	  repeated int64 idx = 2;
//	}
package wire
