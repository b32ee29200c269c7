package validation_test

import (
	"testing"

	"github.com/devNatanFrei/e-commerce/internal/platform/validation"
)

func TestGoPlaygroundValidator_ValidateStruct(t *testing.T) {
	t.Parallel()

	type product struct {
		Name  string  `json:"name" validate:"required,max=255"`
		Type  string  `json:"type" validate:"omitempty,oneof=V S"`
		Price float64 `json:"price" validate:"gte=0"`
	}

	tests := []struct {
		name   string
		given  any
		field  string
		errMsg string
	}{
		{
			"Valid struct has no errors",
			product{Name: "Camiseta", Type: "V", Price: 49.9},
			"name",
			"",
		},
		{
			"Required field is missing",
			product{Type: "V"},
			"name",
			"name is required",
		},
		{
			"Value outside the allowed set",
			product{Name: "Camiseta", Type: "X"},
			"type",
			"type must be one of: V S",
		},
		{
			"Negative price rejected",
			product{Name: "Camiseta", Price: -1},
			"price",
			"price must be greater than or equal to 0",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			v := validation.NewGoPlaygroundValidator()

			errs := v.ValidateStruct(tc.given)
			if tc.errMsg == "" {
				if errs != nil {
					t.Errorf("v.ValidateStruct(%+v) = %+v, want: %+v", tc.given, errs, nil)
				}
				return
			}

			gotMsg := errs[tc.field]
			if gotMsg != tc.errMsg {
				t.Errorf("errs[%q] = %q, want: %q", tc.field, gotMsg, tc.errMsg)
			}
		})
	}
}
