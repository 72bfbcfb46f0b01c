package errors

var (
	// Domain errors — used in usecase/repository
	ErrUserNotFound         = NotFound("user not found")
	ErrConversationNotFound = NotFound("conversation not found")
	ErrMessageNotFound      = NotFound("message not found")
	ErrNotParticipant       = Forbidden("not a participant of this conversation")
	ErrNotMessageSender     = Forbidden("only the sender can edit a message")
	ErrSelfConversation     = InvalidArg("cannot start a conversation with yourself")
	ErrEmptyPayload         = InvalidArg("message needs content, an encrypted payload or an image")
	ErrPartialCipher        = InvalidArg("encrypted payload needs both nonce and data")
	ErrCorruptParticipants  = InvalidArg("conversation has no other participant")
	ErrInvalidPublicKey     = InvalidArg("public key must be 32 bytes, base64 encoded")
	ErrMissingToken         = Unauthorized("missing auth token")
	ErrInvalidToken         = Unauthorized("invalid auth token")
)

func ErrSendFailed(cause error) error {
	return Wrap(CodeInternal, "failed to send message", cause)
}

func ErrDeleteFailed(cause error) error {
	return Wrap(CodeInternal, "failed to delete conversation", cause)
}
