package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studia-labs/studia-cli/internal/core/domain"
)

// recordedRequest captures one request seen by the test server.
type recordedRequest struct {
	Method string
	Path   string
	Body   []byte
}

func newRecordingServer(t *testing.T, response string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var seen []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		seen = append(seen, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: body})
		w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func TestProgressAPI_Get(t *testing.T) {
	srv, seen := newRecordingServer(t,
		`{"progress_percentage":40,"completed_pages":[1,2,3,4],"completed":false}`)

	api := NewProgressAPI(NewClient(srv.URL))
	progress, err := api.Get(context.Background(), "mat-1")

	require.NoError(t, err)
	assert.Equal(t, "GET", (*seen)[0].Method)
	assert.Equal(t, "/progress/mat-1", (*seen)[0].Path)
	assert.Equal(t, 40.0, progress.Percentage)
	assert.Equal(t, []int{1, 2, 3, 4}, progress.CompletedPages)
	assert.Equal(t, "mat-1", progress.MaterialID)
}

func TestProgressAPI_Update(t *testing.T) {
	srv, seen := newRecordingServer(t, `{"message":"ok"}`)

	api := NewProgressAPI(NewClient(srv.URL))
	err := api.Update(context.Background(), "mat-1", domain.ProgressUpdate{
		Percentage:     20,
		CompletedPages: []int{2},
	})

	require.NoError(t, err)
	require.Len(t, *seen, 1)
	assert.Equal(t, "PUT", (*seen)[0].Method)
	assert.Equal(t, "/progress/mat-1", (*seen)[0].Path)

	var body map[string]any
	require.NoError(t, json.Unmarshal((*seen)[0].Body, &body))
	assert.Equal(t, 20.0, body["progress_percentage"])
	assert.Equal(t, []any{2.0}, body["completed_pages"])
}

func TestProgressAPI_MarkPage(t *testing.T) {
	srv, seen := newRecordingServer(t, `{"progress_percentage":70}`)

	api := NewProgressAPI(NewClient(srv.URL))
	err := api.MarkPage(context.Background(), "mat-9", 7)

	require.NoError(t, err)
	assert.Equal(t, "PUT", (*seen)[0].Method)
	assert.Equal(t, "/progress/mat-9/page/7", (*seen)[0].Path)
}

func TestProgressAPI_MarkComplete(t *testing.T) {
	srv, seen := newRecordingServer(t, `{"progress_percentage":100}`)

	api := NewProgressAPI(NewClient(srv.URL))
	err := api.MarkComplete(context.Background(), "mat-9")

	require.NoError(t, err)
	assert.Equal(t, "PUT", (*seen)[0].Method)
	assert.Equal(t, "/progress/mat-9/complete", (*seen)[0].Path)
}

func TestQuizAPI_Answer(t *testing.T) {
	srv, seen := newRecordingServer(t,
		`{"correct":true,"correct_answer":"B","explanation":"because"}`)

	api := NewQuizAPI(NewClient(srv.URL))
	result, err := api.Answer(context.Background(), "q-1", "B")

	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, "B", result.CorrectAnswer)

	var body map[string]string
	require.NoError(t, json.Unmarshal((*seen)[0].Body, &body))
	assert.Equal(t, "q-1", body["question_id"])
	assert.Equal(t, "B", body["user_answer"])
}

func TestMaterialAPI_ListFiltersByDepartment(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	api := NewMaterialAPI(NewClient(srv.URL))
	_, err := api.List(context.Background(), "Safety Training")

	require.NoError(t, err)
	assert.Equal(t, "department=Safety+Training", query)
}

func TestAdminAPI_SchedulePaths(t *testing.T) {
	srv, seen := newRecordingServer(t, `[]`)

	api := NewAdminAPI(NewClient(srv.URL))
	_, err := api.ListSchedules(context.Background())
	require.NoError(t, err)

	err = api.UpdateSchedule(context.Background(), "sch-1", domain.ScheduleInput{
		UserID: "u1", QuestionTime: "09:00", DaysOfWeek: []int{1, 3}, Active: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "/admin/quiz-schedule/all", (*seen)[0].Path)
	assert.Equal(t, "/admin/quiz-schedule/sch-1", (*seen)[1].Path)
	assert.Equal(t, "PUT", (*seen)[1].Method)
}
