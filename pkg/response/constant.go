package response

const (
	MessageSuccess      = "Success"
	DefaultErrorMessage = "Something went wrong"

	BadRequestCode          = 400
	TooManyRequestsCode     = 429
	InternalServerErrorCode = 500

	DateTimeFormat = "2006-01-02T15:04:05.000000Z07:00"
)
