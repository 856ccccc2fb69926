package stt

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"geminigram/internal/domain"
)

const defaultRecognizeEndpoint = "https://speech.googleapis.com/v1/speech:recognize"

type recognizeRequest struct {
	Config recognizeConfig `json:"config"`
	Audio  recognizeAudio  `json:"audio"`
}

type recognizeConfig struct {
	Encoding        string `json:"encoding"`
	SampleRateHertz int    `json:"sampleRateHertz"`
	LanguageCode    string `json:"languageCode"`
}

type recognizeAudio struct {
	Content string `json:"content"`
}

type recognizeResponse struct {
	Results []recognizeResult `json:"results"`
	Error   *recognizeError   `json:"error,omitempty"`
}

type recognizeResult struct {
	Alternatives []recognizeAlternative `json:"alternatives"`
}

type recognizeAlternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

type recognizeError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// recognize submits the decoded waveform to the Google Cloud Speech-to-Text
// v1 REST API. Empty results mean the audio was unintelligible, which is an
// expected outcome, not a backend failure.
func (t *Transcriber) recognize(ctx context.Context, wav []byte) domain.Transcription {
	reqBody := recognizeRequest{
		Config: recognizeConfig{
			Encoding:        "LINEAR16",
			SampleRateHertz: t.sampleRate,
			LanguageCode:    t.language,
		},
		Audio: recognizeAudio{
			Content: base64.StdEncoding.EncodeToString(wav),
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		t.logger.Error("marshal recognize request", "err", err)
		return domain.Transcription{Status: domain.BackendUnavailable}
	}

	url := t.endpoint + "?key=" + t.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.logger.Error("create recognize request", "err", err)
		return domain.Transcription{Status: domain.BackendUnavailable}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Error("speech backend request failed", "err", err)
		return domain.Transcription{Status: domain.BackendUnavailable}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.logger.Error("read recognize response", "err", err)
		return domain.Transcription{Status: domain.BackendUnavailable}
	}

	var recResp recognizeResponse
	if err := json.Unmarshal(body, &recResp); err != nil {
		t.logger.Error("parse recognize response", "err", err, "status", resp.StatusCode)
		return domain.Transcription{Status: domain.BackendUnavailable}
	}
	if recResp.Error != nil {
		t.logger.Error("speech backend error",
			"code", recResp.Error.Code,
			"message", recResp.Error.Message,
		)
		return domain.Transcription{Status: domain.BackendUnavailable}
	}
	if resp.StatusCode != http.StatusOK {
		t.logger.Error("speech backend status", "status", resp.StatusCode)
		return domain.Transcription{Status: domain.BackendUnavailable}
	}

	var parts []string
	for _, r := range recResp.Results {
		if len(r.Alternatives) > 0 && r.Alternatives[0].Transcript != "" {
			parts = append(parts, r.Alternatives[0].Transcript)
		}
	}
	if len(parts) == 0 {
		return domain.Transcription{Status: domain.Unintelligible}
	}

	return domain.Transcription{
		Status: domain.Recognized,
		Text:   strings.Join(parts, " "),
	}
}
