package response

// Resp is the JSON envelope of every endpoint. Status carries the error kind
// ("unauthenticated", "permission-denied", ...) or "ok".
type Resp struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Msg    string `json:"msg"`
	Data   any    `json:"data"`
}

const StatusOK = "ok"

// New never returns a null data field.
func New(code int, status, msg string, data any) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Status: status, Msg: msg, Data: data}
}

func OK(data any) Resp {
	return New(CodeOK, StatusOK, CodeMsgMap[CodeOK], data)
}

// Error builds a failure with the default status for code; customMsg
// overrides the default message.
func Error(code int, customMsg string) Resp {
	return Fail(code, statusOf(code), customMsg)
}

func Fail(code int, status, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return New(code, status, msg, nil)
}

func statusOf(code int) string {
	switch code {
	case CodeBadRequest:
		return "invalid-argument"
	case CodeUnauthorized:
		return "unauthenticated"
	case CodeForbidden:
		return "permission-denied"
	case CodeNotFound:
		return "not-found"
	case CodeTooManyRequests:
		return "resource-exhausted"
	case CodeUnavailable:
		return "unavailable"
	case CodeTimeout:
		return "deadline-exceeded"
	default:
		return "internal"
	}
}
