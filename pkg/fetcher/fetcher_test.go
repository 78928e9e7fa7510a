package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/encoding/simplifiedchinese"
)

const testUA = "headline-cloud-test/1.0"

func TestFetchSendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><a href="/x">新闻</a></body></html>`))
	}))
	defer srv.Close()

	page, err := NewFetcher(testUA).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if gotUA != testUA {
		t.Errorf("User-Agent = %q, want %q", gotUA, testUA)
	}
	if page.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", page.StatusCode)
	}
	if !strings.Contains(string(page.Body), "新闻") {
		t.Errorf("Body = %q, want it to contain the anchor text", page.Body)
	}
}

func TestFetchNonOK(t *testing.T) {
	tests := []struct {
		name string
		code int
	}{
		{name: "not found", code: http.StatusNotFound},
		{name: "forbidden", code: http.StatusForbidden},
		{name: "server error", code: http.StatusInternalServerError},
		{name: "no content", code: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
			}))
			defer srv.Close()

			page, err := NewFetcher(testUA).Fetch(context.Background(), srv.URL)
			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("Fetch() error = %v, want *StatusError", err)
			}
			if statusErr.StatusCode != tt.code {
				t.Errorf("StatusError.StatusCode = %d, want %d", statusErr.StatusCode, tt.code)
			}
			if page == nil || page.StatusCode != tt.code {
				t.Errorf("page status = %v, want %d", page, tt.code)
			}
		})
	}
}

func TestFetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	page, err := NewFetcher(testUA).Fetch(context.Background(), url)
	if err == nil {
		t.Fatal("Fetch() on a closed server returned no error")
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		t.Errorf("transport failure reported as status error: %v", err)
	}
	if page != nil {
		t.Errorf("page = %+v, want nil on transport failure", page)
	}
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := NewFetcher(testUA, WithTimeout(50*time.Millisecond)).Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("Fetch() returned no error despite timeout")
	}
}

func TestFetchDecodesGBK(t *testing.T) {
	encoded, err := simplifiedchinese.GBK.NewEncoder().String(`<html><body><a href="/1">国内新闻</a></body></html>`)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=gbk")
		_, _ = w.Write([]byte(encoded))
	}))
	defer srv.Close()

	page, err := NewFetcher(testUA).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !strings.Contains(string(page.Body), "国内新闻") {
		t.Errorf("Body = %q, want decoded UTF-8 text", page.Body)
	}
}

func TestToUTF8PassesThroughUTF8(t *testing.T) {
	in := []byte("<p>体育</p>")
	if got := ToUTF8(in, "text/html; charset=UTF-8"); string(got) != string(in) {
		t.Errorf("ToUTF8() = %q, want %q", got, in)
	}
}
