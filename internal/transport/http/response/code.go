package response

// 业务码：成功为 0，失败直接沿用 HTTP 状态码
const (
	CodeOK             = 0
	CodeBadRequest     = 400
	CodeUnauthorized   = 401
	CodeForbidden      = 403
	CodeNotFound       = 404
	CodeTooLarge       = 413
	CodeServerError    = 500
	CodeUnavailable    = 503
	CodeGatewayTimeout = 504
)

var CodeMsgMap = map[int]string{
	CodeOK:             "OK",
	CodeBadRequest:     "Bad Request",
	CodeUnauthorized:   "Unauthorized",
	CodeForbidden:      "Forbidden",
	CodeNotFound:       "Not Found",
	CodeTooLarge:       "Request Entity Too Large",
	CodeServerError:    "Internal Server Error",
	CodeUnavailable:    "Service Unavailable",
	CodeGatewayTimeout: "Gateway Timeout",
}
