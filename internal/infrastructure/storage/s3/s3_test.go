package s3

import "testing"

func TestKeyFromURL(t *testing.T) {
	c := &Client{bucket: "interviewsim-files", region: "eu-central-1"}

	cases := []struct {
		name    string
		url     string
		wantKey string
		wantOK  bool
	}{
		{"own object url", "https://interviewsim-files.s3.eu-central-1.amazonaws.com/ab12_cv.pdf", "ab12_cv.pdf", true},
		{"nested key", "https://interviewsim-files.s3.eu-central-1.amazonaws.com/reports/7.pdf", "reports/7.pdf", true},
		{"bare legacy key", "ab12_cv.pdf", "ab12_cv.pdf", true},
		{"foreign bucket", "https://other-bucket.s3.eu-central-1.amazonaws.com/cv.pdf", "", false},
		{"empty", "", "", false},
		{"no key", "https://interviewsim-files.s3.eu-central-1.amazonaws.com/", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key, ok := c.keyFromURL(tc.url)
			if ok != tc.wantOK || key != tc.wantKey {
				t.Fatalf("keyFromURL(%q) = (%q, %v), want (%q, %v)", tc.url, key, ok, tc.wantKey, tc.wantOK)
			}
		})
	}
}

func TestObjectURLRoundTrip(t *testing.T) {
	c := &Client{bucket: "interviewsim-files", region: "eu-central-1"}

	url := c.objectURL("ab12_cv.pdf")
	key, ok := c.keyFromURL(url)
	if !ok || key != "ab12_cv.pdf" {
		t.Fatalf("round trip failed: url=%q key=%q ok=%v", url, key, ok)
	}
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"cv.pdf":                  "cv.pdf",
		"C:\\Users\\dana\\cv.pdf": "cv.pdf",
		"my resume (1).pdf":       "my_resume__1_.pdf",
		"":                        "file",
	}
	for in, want := range cases {
		if got := sanitizeName(in); got != want {
			t.Fatalf("sanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}
