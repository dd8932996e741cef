package scrape

import (
	"reflect"
	"testing"
)

func TestSearchURL_QuotedAndJoined(t *testing.T) {
	got := SearchURL([]string{"AI", "machine learning"})
	want := "https://twitter.com/search?q=%22AI%22+OR+%22machine+learning%22&src=typed_query&f=live"
	if got != want {
		t.Errorf("SearchURL = %q, want %q", got, want)
	}
}

func TestExtractTweetTexts(t *testing.T) {
	html := `<html><body>
		<article data-testid="tweet"><div data-testid="tweetText">First tweet about AI</div></article>
		<article data-testid="tweet"><div data-testid="tweetText">  Second tweet  </div></article>
		<article data-testid="tweet"><div>no text node</div></article>
		<div data-testid="tweetText">orphan outside an article</div>
	</body></html>`

	got, err := ExtractTweetTexts(html)
	if err != nil {
		t.Fatalf("ExtractTweetTexts failed: %v", err)
	}
	want := []string{"First tweet about AI", "Second tweet"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractTweetTexts = %v, want %v", got, want)
	}
}

func TestExtractTweetTexts_EmptyPage(t *testing.T) {
	got, err := ExtractTweetTexts("<html><body></body></html>")
	if err != nil {
		t.Fatalf("ExtractTweetTexts failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no tweets, got %v", got)
	}
}
