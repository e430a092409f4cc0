package frontend

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"regexp"
	"strings"
)

var linkPattern = regexp.MustCompile(`(?i)https?://[^\s<>"'()\[\]{}]+`)

// extractTextFromMessage collects the text/plain and text/html content of
// a message, descending into nested multiparts
func extractTextFromMessage(msg *mail.Message) (string, error) {
	var text bytes.Buffer
	err := collectText(&text, msg.Header.Get("Content-Type"), msg.Header.Get("Content-Transfer-Encoding"), msg.Body)
	return text.String(), err
}

func collectText(out *bytes.Buffer, contentType, transferEncoding string, body io.Reader) error {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || contentType == "" {
		// No usable Content-Type, treat the body as plain text
		mediaType = "text/plain"
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		boundary, ok := params["boundary"]
		if !ok {
			return readText(out, transferEncoding, body)
		}

		mr := multipart.NewReader(body, boundary)
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				// Keep whatever was collected before the broken part
				if out.Len() > 0 {
					return nil
				}
				return err
			}

			// multipart.Reader already decodes quoted-printable parts
			encoding := part.Header.Get("Content-Transfer-Encoding")
			if strings.EqualFold(encoding, "quoted-printable") {
				encoding = ""
			}
			if err := collectText(out, part.Header.Get("Content-Type"), encoding, part); err != nil {
				continue
			}
		}
	}

	if mediaType == "text/plain" || mediaType == "text/html" {
		return readText(out, transferEncoding, body)
	}

	// Attachments and other parts are skipped
	return nil
}

func readText(out *bytes.Buffer, transferEncoding string, body io.Reader) error {
	switch strings.ToLower(strings.TrimSpace(transferEncoding)) {
	case "quoted-printable":
		body = quotedprintable.NewReader(body)
	case "base64":
		body = base64.NewDecoder(base64.StdEncoding, body)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	out.Write(data)
	out.WriteString("\n")
	return nil
}

// extractLinks returns the distinct http(s) links in text, in order of
// first appearance, at most limit of them. limit <= 0 means no limit.
func extractLinks(text string, limit int) []string {
	seen := make(map[string]struct{})
	var links []string

	for _, match := range linkPattern.FindAllString(text, -1) {
		link := lowerScheme(strings.TrimRight(match, ".,;:!?"))
		if _, ok := seen[link]; ok {
			continue
		}
		seen[link] = struct{}{}
		links = append(links, link)

		if limit > 0 && len(links) >= limit {
			break
		}
	}

	return links
}

// lowerScheme lowercases the scheme, which NormalizeURL matches case-sensitively
func lowerScheme(link string) string {
	i := strings.Index(link, "://")
	return strings.ToLower(link[:i]) + link[i:]
}

// decodeHeader decodes RFC 2047 encoded words, returning the input unchanged on failure
func decodeHeader(value string) string {
	decoded, err := new(mime.WordDecoder).DecodeHeader(value)
	if err != nil {
		return value
	}
	return decoded
}
