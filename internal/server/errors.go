package server

import "fmt"

const (
	GenericError       = iota + 100 // generic server error
	BadRequest                      // 101 bad request
	JsonMarshal                     // 102 json.Marshal error
	FileIOError                     // 103 file IO error
	ValidationFailed                // 104 request does not match schema
	ArtifactLoadFailed              // 105 dataset or model artifact error
	LookupMiss                      // 106 identifier not present in dataset
	PredictionFailed                // 107 model inference error
)

// helper function to return human error message for given server error code
func errorMessage(code int) string {
	switch code {
	case 0:
		return ""
	case GenericError:
		return "generic error"
	case BadRequest:
		return "bad request"
	case JsonMarshal:
		return "JSON marshal error"
	case FileIOError:
		return "file IO error"
	case ValidationFailed:
		return "validation error"
	case ArtifactLoadFailed:
		return "artifact load error"
	case LookupMiss:
		return "lookup miss"
	case PredictionFailed:
		return "prediction error"
	}
	return fmt.Sprintf("Not Implemented error for code %d", code)
}
