package whttp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/sdboard/sdboard/internal/utils"
)

const userAgent = "sdboard/1.0 (+asset fetcher)"

// MaxBodySize caps how much of a response body is read.
const MaxBodySize = 32 << 20

type Header struct {
	Name  string
	Value string
}

type Request struct {
	URL     string
	Headers []Header
}

type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
	// HTMLTitle is set when the body turned out to be an HTML page.
	HTMLTitle string
}

// NewClient returns a retrying client that logs through logger. A nil logger
// silences it.
func NewClient(retries int, timeout time.Duration, logger *logrus.Logger) *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = retries
	c.RetryWaitMin = 200 * time.Millisecond
	c.RetryWaitMax = 2 * time.Second
	c.HTTPClient.Timeout = timeout
	if logger != nil {
		c.Logger = utils.LeveledLogger{Logger: logger}
	} else {
		c.Logger = nil
	}
	return c
}

// Get fetches wReq.URL. Non-2xx statuses are returned as errors.
func Get(ctx context.Context, client *retryablehttp.Client, wReq *Request) (*Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", wReq.URL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Cache-Control", "no-transform")
	for _, h := range wReq.Headers {
		req.Header.Add(h.Name, h.Value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return nil, err
	}

	wRes := &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}
	if mt, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err == nil {
		wRes.ContentType = mt
	}
	if wRes.ContentType == "text/html" {
		if title, ok := getHTMLTitle(body); ok {
			wRes.HTMLTitle = strings.ToValidUTF8(strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(title, "\n", ""), "\r", "")), "")
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return wRes, fmt.Errorf("GET %s: unexpected status %d", wReq.URL, resp.StatusCode)
	}
	return wRes, nil
}

func isTitleElement(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Data == "title"
}

func traverse(n *html.Node) (string, bool) {
	if isTitleElement(n) {
		if n.FirstChild != nil {
			return n.FirstChild.Data, true
		}
		return "", true
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		result, ok := traverse(c)
		if ok {
			return result, ok
		}
	}

	return "", false
}

func getHTMLTitle(body []byte) (string, bool) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return "", false
	}
	return traverse(doc)
}
