package audio

import (
	"context"
	"io"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

type ITranscriber interface {
	TranscribeAudio(ctx context.Context, filename string, reader io.Reader) (string, error)
}

type TranscriptionService struct {
	client   *openai.Client
	language string
}

func NewTranscriptionService() ITranscriber {
	language := os.Getenv("TRANSCRIPTION_LANGUAGE")
	if language == "" {
		language = "en"
	}

	return &TranscriptionService{
		client:   openai.NewClient(os.Getenv("OPENAI_API_KEY")),
		language: language,
	}
}

// TranscribeAudio runs Whisper over the uploaded voice command. The filename
// is only used by the API to pick the container format.
func (t *TranscriptionService) TranscribeAudio(ctx context.Context, filename string, reader io.Reader) (string, error) {
	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: filename,
		Reader:   reader,
		Language: t.language,
	}

	resp, err := t.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", err
	}

	return resp.Text, nil
}
