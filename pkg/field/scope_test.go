package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentkit/customfields/pkg/field"
)

func TestNewScope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		component string
		area      string
		itemID    int64
		wantErr   error
	}{
		{
			name:      "valid names",
			component: "core_course",
			area:      "course",
		},
		{
			name:      "valid with item id",
			component: "mod_survey",
			area:      "entry",
			itemID:    42,
		},
		{
			name:      "empty component",
			component: "",
			area:      "course",
			wantErr:   field.ErrInvalidComponent,
		},
		{
			name:      "uppercase component",
			component: "Core_Course",
			area:      "course",
			wantErr:   field.ErrInvalidComponent,
		},
		{
			name:      "component starting with digit",
			component: "1course",
			area:      "course",
			wantErr:   field.ErrInvalidComponent,
		},
		{
			name:      "area with dash",
			component: "core_course",
			area:      "my-area",
			wantErr:   field.ErrInvalidArea,
		},
		{
			name:      "empty area",
			component: "core_course",
			area:      "",
			wantErr:   field.ErrInvalidArea,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := field.NewScope(tt.component, tt.area, tt.itemID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, s.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.component, s.Component)
			assert.Equal(t, tt.area, s.Area)
			assert.Equal(t, tt.itemID, s.ItemID)
		})
	}
}

func TestScopeString(t *testing.T) {
	t.Parallel()

	s, err := field.NewScope("core_course", "course", 7)
	require.NoError(t, err)
	assert.Equal(t, "core_course/course/7", s.String())
}
