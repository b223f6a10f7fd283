package ai

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/haivivi/callgear/pkg/convo"
)

// Default OpenAI models used when the configured name has no model segment.
const (
	DefaultWhisperModel = openai.AudioModelWhisper1
	DefaultChatModel    = openai.ChatModelGPT4oMini
	DefaultSpeechModel  = openai.SpeechModelTTS1
	DefaultSpeechVoice  = string(openai.AudioSpeechNewParamsVoiceAlloy)
)

// OpenAI implements Transcriber, Completer, and Synthesizer against the
// OpenAI API.
type OpenAI struct {
	client *openai.Client
	voice  string
}

// OpenAIOption configures an OpenAI backend.
type OpenAIOption func(*openAIConfig)

type openAIConfig struct {
	baseURL string
	voice   string
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(url string) OpenAIOption {
	return func(c *openAIConfig) { c.baseURL = url }
}

// WithVoice sets the synthesis voice. Default is alloy.
func WithVoice(voice string) OpenAIOption {
	return func(c *openAIConfig) { c.voice = voice }
}

// NewOpenAI creates an OpenAI backend authenticated with the API key.
func NewOpenAI(apiKey string, opts ...OpenAIOption) *OpenAI {
	cfg := openAIConfig{voice: DefaultSpeechVoice}
	for _, opt := range opts {
		opt(&cfg)
	}
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}
	client := openai.NewClient(reqOpts...)
	return &OpenAI{client: &client, voice: cfg.voice}
}

// Transcribe transcribes one utterance of audio with the Whisper API.
func (o *OpenAI) Transcribe(ctx context.Context, model string, audio []byte) (string, error) {
	if model == "" {
		model = DefaultWhisperModel
	}
	resp, err := o.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: model,
		File:  openai.File(bytes.NewReader(audio), "utterance.wav", "audio/wav"),
	})
	if err != nil {
		return "", &Error{Op: OpTranscribe, Name: "openai/" + model, Err: err}
	}
	return resp.Text, nil
}

// Complete generates the next assistant reply with the chat completions API.
func (o *OpenAI) Complete(ctx context.Context, model string, turns []convo.Turn) (string, error) {
	if model == "" {
		model = DefaultChatModel
	}
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    model,
		Messages: buildOpenAIMessages(turns),
	})
	if err != nil {
		return "", &Error{Op: OpComplete, Name: "openai/" + model, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Op: OpComplete, Name: "openai/" + model, Err: errors.New("empty completion")}
	}
	return resp.Choices[0].Message.Content, nil
}

// Synthesize renders text as PCM audio with the speech API.
func (o *OpenAI) Synthesize(ctx context.Context, model string, text string) ([]byte, error) {
	if model == "" {
		model = DefaultSpeechModel
	}
	resp, err := o.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          model,
		Voice:          openai.AudioSpeechNewParamsVoice(o.voice),
		Input:          text,
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatPCM,
	})
	if err != nil {
		return nil, &Error{Op: OpSynthesize, Name: "openai/" + model, Err: err}
	}
	defer resp.Body.Close()
	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: OpSynthesize, Name: "openai/" + model, Err: err}
	}
	return audio, nil
}

func buildOpenAIMessages(turns []convo.Turn) []openai.ChatCompletionMessageParamUnion {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns))
	for _, t := range turns {
		switch t.Role {
		case convo.RoleSystem:
			msgs = append(msgs, openai.SystemMessage(t.Content))
		case convo.RoleUser:
			msgs = append(msgs, openai.UserMessage(t.Content))
		case convo.RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(t.Content))
		}
	}
	return msgs
}
