package sequence

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuns(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want []Run
	}{
		{name: "empty", in: "", want: nil},
		{name: "single run", in: "abcdef", want: []Run{{0, 6}}},
		{name: "two runs", in: "cat dog", want: []Run{{0, 3}, {4, 7}}},
		{name: "three runs", in: "abc defg hij", want: []Run{{0, 3}, {4, 8}, {9, 12}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.in).Runs()
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Runs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunAt(t *testing.T) {
	seq := Parse("abc defg")

	r, ok := seq.RunAt(5)
	require.True(t, ok)
	assert.Equal(t, Run{Start: 4, End: 8}, r)
	assert.Equal(t, "defg", seq.Text(r))

	_, ok = seq.RunAt(3)
	assert.False(t, ok, "a separator is not part of any run")

	_, ok = seq.RunAt(42)
	assert.False(t, ok)
}

func TestLettersAround(t *testing.T) {
	seq := Parse("abc defgh ij")

	assert.Equal(t, 0, seq.LettersBefore(0))
	assert.Equal(t, 3, seq.LettersBefore(3))
	assert.Equal(t, 2, seq.LettersBefore(6), "counts back to the separator at index 3")
	assert.Equal(t, 4, seq.LettersAfter(4), "counts forward to the separator at index 9")
	assert.Equal(t, 0, seq.LettersAfter(11))
}

func TestRunOverlaps(t *testing.T) {
	assert.True(t, Run{0, 5}.Overlaps(Run{4, 8}))
	assert.False(t, Run{0, 4}.Overlaps(Run{4, 8}), "half-open ranges that touch do not overlap")
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		minBlock int
		wantErr  error
	}{
		{name: "valid", in: "cat dog", minBlock: 3},
		{name: "empty is valid", in: "", minBlock: 3},
		{name: "leading separator", in: " catdog", minBlock: 3, wantErr: ErrLeadingSeparator},
		{name: "trailing separator", in: "catdog ", minBlock: 3, wantErr: ErrTrailingSeparator},
		{name: "adjacent separators", in: "cat  dog", minBlock: 3, wantErr: ErrAdjacentSeparators},
		{name: "short run", in: "cat do", minBlock: 3, wantErr: ErrShortRun},
		{name: "short single run", in: "ca", minBlock: 3, wantErr: ErrShortRun},
		{name: "uppercase cell", in: "Cat dog", minBlock: 3, wantErr: ErrInvalidCell},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Parse(tc.in).Validate(tc.minBlock)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestClone_IsIndependent(t *testing.T) {
	orig := Parse("cat dog")
	c := orig.Clone()
	c[0] = 'b'
	assert.Equal(t, "cat dog", orig.String())
	assert.Equal(t, "bat dog", c.String())
}
