package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tmsnobrega/pipeline-car-ml-pricing/internal/domain"
)

func TestResolveAddress(t *testing.T) {
	tests := []struct {
		name       string
		fragment1  string
		fragment2  string
		sellerType string
		want       Address
	}{
		{
			name:       "private seller exposes only zip and city",
			fragment1:  "5384Da Schaijk, NL",
			sellerType: domain.SellerPrivate,
			want:       Address{ZipCode: "5384Da", City: "Schaijk"},
		},
		{
			name:       "dealer keeps street and parses second fragment",
			fragment1:  "Hoofdstraat 12",
			fragment2:  "9712 GK Groningen, NL",
			sellerType: domain.SellerDealer,
			want:       Address{Display: "Hoofdstraat 12", ZipCode: "9712 GK", City: "Groningen"},
		},
		{
			name:       "dealer with missing second fragment degrades to empty",
			fragment1:  "Hoofdstraat 12",
			sellerType: domain.SellerDealer,
			want:       Address{},
		},
		{
			name:       "private seller with unstructured fragment",
			fragment1:  "Somewhere abroad",
			sellerType: domain.SellerPrivate,
			want:       Address{},
		},
		{
			name:       "unknown seller type keeps merged fragments as display",
			fragment1:  " Kerkplein 3 ",
			fragment2:  "1234 AB Utrecht, NL",
			sellerType: "Importer",
			want:       Address{Display: "Kerkplein 3, 1234 AB Utrecht, NL"},
		},
		{
			name:       "private seller with empty fragment",
			sellerType: domain.SellerPrivate,
			want:       Address{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveAddress(tt.fragment1, tt.fragment2, tt.sellerType)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMergeAddress(t *testing.T) {
	assert.Equal(t, "Hoofdstraat 12, 9712 GK Groningen, NL", MergeAddress(" Hoofdstraat 12 ", "9712 GK Groningen, NL"))
	assert.Equal(t, "Hoofdstraat 12", MergeAddress("Hoofdstraat 12", ""))
	assert.Equal(t, "9712 GK Groningen, NL", MergeAddress("", "9712 GK Groningen, NL"))
	assert.Equal(t, "", MergeAddress("", ""))
}
