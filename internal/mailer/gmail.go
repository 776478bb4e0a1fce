// Package mailer delivers the rendered report over the Gmail API using a
// refresh-token OAuth flow. Credentials come from the environment and are
// never written to disk.
package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"golang.org/x/oauth2"

	"github.com/rsundaram/Networth-Tracker-Backend/internal/config"
)

const (
	googleTokenURL = "https://oauth2.googleapis.com/token"
	gmailSendURL   = "https://gmail.googleapis.com/gmail/v1/users/me/messages/send"
)

// Message is one outbound HTML email. InlinePNG, when set, is attached as a
// related part referenced from the body via cid:InlineCID.
type Message struct {
	Subject   string
	From      string
	To        string
	HTMLBody  string
	InlinePNG []byte
	InlineCID string
}

// GmailSender sends messages through the Gmail API.
type GmailSender struct {
	creds config.GoogleConfig

	// Overridable in tests.
	TokenURL string
	SendURL  string
	Client   *http.Client
}

// NewGmailSender creates a sender from Google OAuth credentials.
func NewGmailSender(creds config.GoogleConfig) *GmailSender {
	return &GmailSender{
		creds:    creds,
		TokenURL: googleTokenURL,
		SendURL:  gmailSendURL,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// SendHTML assembles the MIME message, exchanges the refresh token for an
// access token, and posts the message to the Gmail send endpoint.
func (g *GmailSender) SendHTML(ctx context.Context, msg Message) error {
	if g.creds.ClientID == "" || g.creds.ClientSecret == "" || g.creds.RefreshToken == "" {
		return fmt.Errorf("missing GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET / GOOGLE_REFRESH_TOKEN")
	}

	raw, err := BuildMIME(msg)
	if err != nil {
		return err
	}

	conf := &oauth2.Config{
		ClientID:     g.creds.ClientID,
		ClientSecret: g.creds.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: g.TokenURL},
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.Client)
	token, err := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: g.creds.RefreshToken}).Token()
	if err != nil {
		return fmt.Errorf("gmail token exchange: %w", err)
	}

	payload, err := json.Marshal(map[string]string{
		"raw": base64.URLEncoding.EncodeToString(raw),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.SendURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return fmt.Errorf("gmail send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("gmail send failed: %d %s", resp.StatusCode, body)
	}
	return nil
}

// BuildMIME assembles an RFC 2387 multipart/related message: an HTML body
// plus an optional inline PNG referenced by Content-ID.
func BuildMIME(msg Message) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&buf, "From: %s\r\n", msg.From)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/related; boundary=%s\r\n\r\n", writer.Boundary())

	htmlHeader := textproto.MIMEHeader{}
	htmlHeader.Set("Content-Type", "text/html; charset=utf-8")
	htmlPart, err := writer.CreatePart(htmlHeader)
	if err != nil {
		return nil, err
	}
	if _, err := htmlPart.Write([]byte(msg.HTMLBody)); err != nil {
		return nil, err
	}

	if len(msg.InlinePNG) > 0 {
		cid := msg.InlineCID
		if cid == "" {
			cid = "chart"
		}
		imgHeader := textproto.MIMEHeader{}
		imgHeader.Set("Content-Type", "image/png")
		imgHeader.Set("Content-Transfer-Encoding", "base64")
		imgHeader.Set("Content-ID", fmt.Sprintf("<%s>", cid))
		imgHeader.Set("Content-Disposition", `inline; filename="chart.png"`)
		imgPart, err := writer.CreatePart(imgHeader)
		if err != nil {
			return nil, err
		}
		encoded := base64.StdEncoding.EncodeToString(msg.InlinePNG)
		if _, err := imgPart.Write([]byte(encoded)); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
