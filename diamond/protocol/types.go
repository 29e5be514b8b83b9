package protocol

type MessageType uint8

const (
	MessageTypeEncrypt MessageType = 1
	MessageTypeDecrypt MessageType = 2
	MessageTypeResult  MessageType = 3
	MessageTypeError   MessageType = 4
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeEncrypt:
		return "ENCRYPT"
	case MessageTypeDecrypt:
		return "DECRYPT"
	case MessageTypeResult:
		return "RESULT"
	case MessageTypeError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
