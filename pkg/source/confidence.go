package source

import "strings"

// DefaultHighTrust lists outlets graded High by default.
var DefaultHighTrust = []string{
	"yonhapnews.co.kr", "yna.co.kr", "kbs.co.kr", "mbc.co.kr", "sbs.co.kr",
	"chosun.com", "donga.com", "joongang.co.kr", "hani.co.kr", "khan.co.kr",
	"bbc.com", "cnn.com", "reuters.com", "ap.org", "nytimes.com",
}

// DefaultMidTrust lists outlets graded Mid by default.
var DefaultMidTrust = []string{
	"naver.com", "daum.net", "mk.co.kr", "mt.co.kr", "etnews.com",
	"newsis.com", "news1.kr", "edaily.co.kr",
}

// Classifier grades an outlet's domain against trust lists.
type Classifier struct {
	high []string
	mid  []string
}

// NewClassifier creates a classifier with the default lists plus extras.
func NewClassifier(extraHigh, extraMid []string) *Classifier {
	return &Classifier{
		high: lowered(DefaultHighTrust, extraHigh),
		mid:  lowered(DefaultMidTrust, extraMid),
	}
}

func lowered(base, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	for _, d := range append(append([]string{}, base...), extra...) {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			out = append(out, d)
		}
	}
	return out
}

// Classify returns High or Mid when domain is, or is a subdomain of, a
// listed outlet, and Low otherwise.
func (c *Classifier) Classify(domain string) Confidence {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return ConfidenceLow
	}
	if matchesAny(domain, c.high) {
		return ConfidenceHigh
	}
	if matchesAny(domain, c.mid) {
		return ConfidenceMid
	}
	return ConfidenceLow
}

// Fill sets the confidence of articles that arrived without one.
func (c *Classifier) Fill(articles []Article) {
	for i := range articles {
		if articles[i].Confidence == "" {
			articles[i].Confidence = c.Classify(articles[i].Domain)
		}
	}
}

func matchesAny(domain string, list []string) bool {
	for _, d := range list {
		if domain == d || strings.HasSuffix(domain, "."+d) {
			return true
		}
	}
	return false
}
