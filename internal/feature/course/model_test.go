package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-choose-api/internal/domain"
)

func TestOffering_Slots(t *testing.T) {
	o := Offering{OpenTime: "[11,12,78]"}
	slots, err := o.Slots()
	require.NoError(t, err)
	assert.Equal(t, []Slot{{1, 1}, {1, 2}, {7, 8}}, slots)

	for _, bad := range []string{"[10]", "[19]", "[81]", "[-11]", `"11"`, "nope"} {
		_, err := (&Offering{OpenTime: bad}).Slots()
		assert.ErrorIs(t, err, domain.ErrValidation, bad)
	}
}

func TestCourseModel_Validate(t *testing.T) {
	ok := &CourseModel{Offering: Offering{Name: "Go", Capacity: 30, OpenTime: "[31]"}}
	assert.NoError(t, ok.Validate())

	noName := &CourseModel{Offering: Offering{Capacity: 30, OpenTime: "[31]"}}
	assert.ErrorIs(t, noName.Validate(), domain.ErrValidation)

	negative := &ChooseModel{Offering: Offering{Name: "Go", Capacity: -1, OpenTime: "[31]"}}
	assert.ErrorIs(t, negative.Validate(), domain.ErrValidation)

	badSlot := &ChooseModel{Offering: Offering{Name: "Go", OpenTime: "[99]"}}
	assert.ErrorIs(t, badSlot.Validate(), domain.ErrValidation)
}
