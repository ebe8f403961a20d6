package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogFilter(t *testing.T) {
	tests := []struct {
		name    string
		raw     LogQuery
		want    LogFilter
		wantErr string
	}{
		{name: "no bounds", raw: LogQuery{}, want: LogFilter{}},
		{
			name: "all bounds",
			raw:  LogQuery{From: "2023-01-01", To: "2023-02-01", Limit: "5"},
			want: LogFilter{From: "2023-01-01", To: "2023-02-01", Limit: 5},
		},
		{name: "zero limit means no limit", raw: LogQuery{Limit: "0"}, want: LogFilter{}},
		{
			name:    "invalid from",
			raw:     LogQuery{From: "2023-13-01"},
			wantErr: "The parameter 'from' must be provided in the format YYYY-MM-DD. You provided '2023-13-01'",
		},
		{
			name:    "invalid to",
			raw:     LogQuery{From: "2023-01-01", To: "yesterday"},
			wantErr: "The parameter 'to' must be provided in the format YYYY-MM-DD. You provided 'yesterday'",
		},
		{
			name:    "impossible calendar date",
			raw:     LogQuery{To: "2023-02-30"},
			wantErr: "The parameter 'to' must be provided in the format YYYY-MM-DD. You provided '2023-02-30'",
		},
		{
			name:    "non numeric limit",
			raw:     LogQuery{Limit: "ten"},
			wantErr: "The parameter 'limit' must be a whole number. You provided 'ten'",
		},
		{
			name:    "negative limit",
			raw:     LogQuery{Limit: "-1"},
			wantErr: "The parameter 'limit' must be a whole number. You provided '-1'",
		},
		{
			name:    "fractional limit",
			raw:     LogQuery{Limit: "2.5"},
			wantErr: "The parameter 'limit' must be a whole number. You provided '2.5'",
		},
		{
			name:    "from after to",
			raw:     LogQuery{From: "2023-05-02", To: "2023-05-01"},
			wantErr: "'from' must be a date before 'to'!",
		},
		{
			name:    "from equal to",
			raw:     LogQuery{From: "2023-05-01", To: "2023-05-01"},
			wantErr: "'from' must be a date before 'to'!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLogFilter(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, IsKind(err, KindValidation))
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNewExercise(t *testing.T) {
	now := time.Date(2024, time.March, 9, 23, 30, 0, 0, time.FixedZone("UTC-2", -2*60*60))

	tests := []struct {
		name    string
		raw     ExerciseInput
		want    NewExercise
		wantErr string
	}{
		{
			name: "explicit date",
			raw:  ExerciseInput{Description: "Run", Duration: json.Number("30"), Date: "2023-05-01"},
			want: NewExercise{OwnerID: 7, Description: "Run", Duration: 30, Date: "2023-05-01"},
		},
		{
			name: "missing date defaults to utc today",
			raw:  ExerciseInput{Description: "Swim", Duration: json.Number("45")},
			want: NewExercise{OwnerID: 7, Description: "Swim", Duration: 45, Date: "2024-03-10"},
		},
		{
			name: "empty date defaults to utc today",
			raw:  ExerciseInput{Description: "Swim", Duration: 45, Date: ""},
			want: NewExercise{OwnerID: 7, Description: "Swim", Duration: 45, Date: "2024-03-10"},
		},
		{
			name: "whole float duration",
			raw:  ExerciseInput{Description: "Row", Duration: json.Number("20.0"), Date: "2023-05-01"},
			want: NewExercise{OwnerID: 7, Description: "Row", Duration: 20, Date: "2023-05-01"},
		},
		{
			name:    "missing description",
			raw:     ExerciseInput{Duration: json.Number("30")},
			wantErr: "Please provide exercise description and duration",
		},
		{
			name:    "missing duration",
			raw:     ExerciseInput{Description: "Run"},
			wantErr: "Please provide exercise description and duration",
		},
		{
			name:    "zero duration",
			raw:     ExerciseInput{Description: "Run", Duration: json.Number("0")},
			wantErr: "Please provide exercise description and duration",
		},
		{
			name:    "textual duration",
			raw:     ExerciseInput{Description: "Run", Duration: "thirty"},
			wantErr: "Exercise duration should be a positive whole number. You provided thirty",
		},
		{
			name:    "fractional duration",
			raw:     ExerciseInput{Description: "Run", Duration: json.Number("2.5")},
			wantErr: "Exercise duration should be a positive whole number. You provided 2.5",
		},
		{
			name:    "negative duration",
			raw:     ExerciseInput{Description: "Run", Duration: json.Number("-5")},
			wantErr: "Exercise duration should be a positive whole number. You provided -5",
		},
		{
			name:    "numeric description",
			raw:     ExerciseInput{Description: json.Number("12"), Duration: json.Number("5")},
			wantErr: "Exercise description should be a string. You provided 12",
		},
		{
			name:    "non string date",
			raw:     ExerciseInput{Description: "Run", Duration: json.Number("30"), Date: json.Number("20230501")},
			wantErr: "Date should be a string in YYYY-MM-DD (ISO) format",
		},
		{
			name:    "invalid date",
			raw:     ExerciseInput{Description: "Run", Duration: json.Number("30"), Date: "01/05/2023"},
			wantErr: "The parameter 'date' must be provided in the format YYYY-MM-DD. You provided '01/05/2023'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNewExercise(7, tt.raw, now)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, IsKind(err, KindValidation))
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseUsername(t *testing.T) {
	got, err := ParseUsername("  alice ")
	require.NoError(t, err)
	assert.Equal(t, "alice", got)

	for _, raw := range []string{"", "   "} {
		_, err := ParseUsername(raw)
		require.Error(t, err)
		assert.Equal(t, "Username not provided", err.Error())
		assert.True(t, IsKind(err, KindValidation))
	}
}

func TestParseUserID(t *testing.T) {
	id, err := ParseUserID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "0", "-3", "1.5"} {
		_, err := ParseUserID(raw)
		require.Error(t, err, raw)
		assert.True(t, IsKind(err, KindValidation), raw)
	}
}
