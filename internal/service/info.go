package service

// InfoService serves a fixed greeting, optionally truncated.
type InfoService struct {
	message  string
	maxChunk int
}

func NewInfoService(message string, maxChunk int) *InfoService {
	if message == "" {
		message = DefaultInfoMessage
	}
	if maxChunk <= 0 {
		maxChunk = DefaultInfoMaxChunk
	}
	return &InfoService{message: message, maxChunk: maxChunk}
}

// Greeting returns the message truncated to length. Without a length the
// whole message is returned (capped at the chunk size). Out-of-range lengths
// are clamped to [0, min(maxChunk, len(message))].
func (s *InfoService) Greeting(length *int) string {
	limit := min(s.maxChunk, len(s.message))
	if length == nil {
		return s.message[:limit]
	}
	n := max(*length, 0)
	return s.message[:min(n, limit)]
}
