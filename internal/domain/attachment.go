package domain

// Attachment is an uploaded file as it arrives in the webhook body, with the
// payload still base64-encoded (optionally wrapped in a data: URL).
type Attachment struct {
	Name      string
	MimeType  string
	SizeBytes int64
	Payload   string
}

// BinaryAttachment is a decoded attachment bound to its binary side-channel
// key (data0, data1, ...). Only attachments that decoded successfully and
// passed validation become BinaryAttachments.
type BinaryAttachment struct {
	Key       string
	Name      string
	MimeType  string
	SizeBytes int64
	Data      []byte
}
