package toolkit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestStarWarsSearchFormatsFirstResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/people/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("search"); got != "Luke Skywalker" {
			t.Errorf("unexpected search query: %q", got)
		}
		_, _ = w.Write([]byte(`{"results":[
			{"name":"Luke Skywalker","height":"172","mass":"77","hair_color":"blond","eye_color":"blue","birth_year":"19BBY","gender":"male"},
			{"name":"Luke Other","height":"1","mass":"1","hair_color":"none","eye_color":"none","birth_year":"0","gender":"n/a"}
		]}`))
	}))
	defer srv.Close()

	client := NewStarWarsClient(srv.URL, time.Second)
	got, err := client.Search(context.Background(), "Luke Skywalker")
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	want := "Character: Luke Skywalker\nHeight: 172 cm\nMass: 77 kg\nHair Color: blond\nEye Color: blue\nBirth Year: 19BBY\nGender: male"
	if got != want {
		t.Fatalf("unexpected result:\n%s", got)
	}
}

func TestStarWarsSearchNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	client := NewStarWarsClient(srv.URL, time.Second)
	_, err := client.Search(context.Background(), "Jar Jar Bonks")
	if err == nil {
		t.Fatalf("expected error for empty result set")
	}
	if !strings.Contains(err.Error(), "Jar Jar Bonks") {
		t.Fatalf("expected searched name in error, got %v", err)
	}
}

func TestStarWarsSearchUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewStarWarsClient(srv.URL, time.Second)
	_, err := client.Search(context.Background(), "Leia")
	if err == nil {
		t.Fatalf("expected error for upstream failure")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestStarWarsSearchEscapesQuery(t *testing.T) {
	var rawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"results":[{"name":"Darth Vader","height":"202","mass":"136","hair_color":"none","eye_color":"yellow","birth_year":"41.9BBY","gender":"male"}]}`))
	}))
	defer srv.Close()

	client := NewStarWarsClient(srv.URL, time.Second)
	if _, err := client.Search(context.Background(), "Darth Vader"); err != nil {
		t.Fatalf("search error: %v", err)
	}
	if !strings.Contains(rawQuery, "Darth+Vader") && !strings.Contains(rawQuery, "Darth%20Vader") {
		t.Fatalf("expected escaped query, got %q", rawQuery)
	}
}
