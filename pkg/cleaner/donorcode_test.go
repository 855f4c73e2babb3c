// pkg/cleaner/donorcode_test.go
package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertDonorLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{
			name:  "degreed alumni pair collapses",
			label: "Friend, Alumni",
			want:  "Alumni",
		},
		{
			name:  "alumni first segment collapses",
			label: "Alumni, Friend",
			want:  "Alumni",
		},
		{
			name:  "freeform alumni label collapses",
			label: "Alumni Board Member",
			want:  "Alumni",
		},
		{
			name:  "non-degreed alumni splits on comma not hyphen",
			label: "Non-Degreed Alumni, Friend",
			want:  "Friend Non-Degreed Alumni",
		},
		{
			name:  "plain pair is reordered",
			label: "Parent, Current",
			want:  "Current Parent",
		},
		{
			name:  "pair without space after comma passes through",
			label: "Parent,Current",
			want:  "Parent,Current",
		},
		{
			name:  "label without comma passes through",
			label: "Trustee",
			want:  "Trustee",
		},
		{
			name:  "only first comma-space pair is split",
			label: "Parent, Current, Extra",
			want:  "Current, Extra Parent",
		},
		{
			name:  "empty label passes through",
			label: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConvertDonorLabel(tt.label))
		})
	}
}

func TestConvertDonorLabelIsPure(t *testing.T) {
	// Applying the mapping twice per label must match applying it once
	// per row: the function has no state.
	labels := []string{"Friend, Alumni", "Parent, Current", "Non-Degreed Alumni, Friend"}
	for _, label := range labels {
		first := ConvertDonorLabel(label)
		second := ConvertDonorLabel(label)
		assert.Equal(t, first, second)
	}
}
