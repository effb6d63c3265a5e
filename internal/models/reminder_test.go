package models

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validate(t *testing.T) *validator.Validate {
	t.Helper()
	require.NoError(t, RegisterValidators())
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	return v
}

func validCreateRequest() CreateReminderRequest {
	return CreateReminderRequest{
		Title:             "Dentist",
		Message:           "Time for your dentist appointment",
		PhoneNumber:       "+1234567890",
		ScheduledDatetime: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		Timezone:          "America/New_York",
	}
}

func TestCreateRequestValidation(t *testing.T) {
	v := validate(t)

	assert.NoError(t, v.Struct(validCreateRequest()))

	missingPrefix := validCreateRequest()
	missingPrefix.PhoneNumber = "1234567890"
	assert.Error(t, v.Struct(missingPrefix))

	zeroCountryCode := validCreateRequest()
	zeroCountryCode.PhoneNumber = "+0123456789"
	assert.Error(t, v.Struct(zeroCountryCode))

	tooManyDigits := validCreateRequest()
	tooManyDigits.PhoneNumber = "+1234567890123456"
	assert.Error(t, v.Struct(tooManyDigits))

	shortTitle := validCreateRequest()
	shortTitle.Title = "A"
	assert.Error(t, v.Struct(shortTitle))

	shortMessage := validCreateRequest()
	shortMessage.Message = "too short"
	assert.Error(t, v.Struct(shortMessage))

	badTimezone := validCreateRequest()
	badTimezone.Timezone = "Not/AZone"
	assert.Error(t, v.Struct(badTimezone))
}

func TestUpdateRequestValidatesOnlySetFields(t *testing.T) {
	v := validate(t)

	assert.NoError(t, v.Struct(UpdateReminderRequest{}))

	title := "Renamed"
	assert.NoError(t, v.Struct(UpdateReminderRequest{Title: &title}))

	bad := "x"
	assert.Error(t, v.Struct(UpdateReminderRequest{Title: &bad}))
}

func TestFilterValuesOmitUnsetFields(t *testing.T) {
	assert.Empty(t, ReminderFilters{}.Values())

	v := ReminderFilters{Status: StatusCompleted, Page: 1}.Values()
	assert.Equal(t, "completed", v.Get("status"))
	assert.Equal(t, "1", v.Get("page"))
	_, hasSearch := v["search"]
	assert.False(t, hasSearch)
}

func TestUpdateApply(t *testing.T) {
	rem := Reminder{Title: "Old", Message: "Original message text", Timezone: "UTC"}
	title := "New"
	UpdateReminderRequest{Title: &title}.Apply(&rem)

	assert.Equal(t, "New", rem.Title)
	assert.Equal(t, "Original message text", rem.Message)
	assert.Equal(t, "UTC", rem.Timezone)
}

func TestListResponseWithout(t *testing.T) {
	resp := &ReminderListResponse{
		Reminders: []Reminder{{ID: "r1"}, {ID: "r2"}},
		Total:     5,
		Page:      1,
		PageSize:  2,
	}

	out := resp.Without("r1")
	assert.Len(t, out.Reminders, 1)
	assert.Equal(t, "r2", out.Reminders[0].ID)
	assert.Equal(t, 4, out.Total)

	// The original is untouched
	assert.Len(t, resp.Reminders, 2)
	assert.Equal(t, 5, resp.Total)
}
