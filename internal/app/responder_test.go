package app

import "testing"

func TestKeywordResponderFirstMatchWins(t *testing.T) {
	r := NewKeywordResponder([]KeywordRule{
		{Keywords: []string{" PFOS ", ""}, Reply: "pfos"},
		{Keywords: []string{"supplier"}, Reply: "supplier"},
		{Keywords: []string{"ignored"}, Reply: "  "},
	}, "")

	cases := []struct {
		in, want string
	}{
		{"Which SUPPLIER uses PFOS?", "pfos"},
		{"who is my riskiest supplier", "supplier"},
		{"ignored", "Sorry, I don't have an answer for that yet."},
	}
	for _, tc := range cases {
		if got := r.Reply(tc.in); got != tc.want {
			t.Errorf("Reply(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
