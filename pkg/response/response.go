package response

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Error string `json:"error"`
}

// DuplicateBody is returned with 409 when a customer looks like an existing one.
type DuplicateBody struct {
	Error     string      `json:"error"`
	Duplicate interface{} `json:"duplicate"`
	Code      string      `json:"code"`
}

// MessageBody acknowledges an action on a single resource.
type MessageBody struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// CodeDuplicateFound tags DuplicateBody so clients can offer a forced retry.
const CodeDuplicateFound = "DUPLICATE_FOUND"

// Error returns the error body for message.
func Error(message string) ErrorBody {
	return ErrorBody{Error: message}
}

// Duplicate returns a conflict body carrying the existing record.
func Duplicate(message string, existing interface{}) DuplicateBody {
	return DuplicateBody{Error: message, Duplicate: existing, Code: CodeDuplicateFound}
}

// Message returns an acknowledgement for the resource id.
func Message(message, id string) MessageBody {
	return MessageBody{Message: message, ID: id}
}
