package whttp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetRetriesServerErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		if r.Header.Get("X-Test") != "1" {
			t.Errorf("custom header not sent")
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewClient(3, 5*time.Second, nil)
	client.RetryWaitMin = time.Millisecond
	client.RetryWaitMax = time.Millisecond

	res, err := Get(context.Background(), client, &Request{URL: srv.URL, Headers: []Header{{Name: "X-Test", Value: "1"}}})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(res.Body) != `{"ok":true}` || res.ContentType != "application/json" {
		t.Fatalf("unexpected response: %+v", res)
	}
	if atomic.LoadInt32(&hits) != 3 {
		t.Fatalf("hits = %d, want 3", hits)
	}
}

func TestGetHTMLTitleOnErrorPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("<html><head><title>\n Not Found </title></head><body></body></html>"))
	}))
	defer srv.Close()

	res, err := Get(context.Background(), NewClient(0, time.Second, nil), &Request{URL: srv.URL})
	if err == nil {
		t.Fatal("expected an error for 404")
	}
	if res == nil || res.HTMLTitle != "Not Found" {
		t.Fatalf("unexpected response: %+v", res)
	}
}
