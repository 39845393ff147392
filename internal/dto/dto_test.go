package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/task-manager/internal/model"
)

// TestTaskMappingRoundTrip walks every valid priority × status pair (in a
// few casings) and checks request → model → request keeps all four fields.
func TestTaskMappingRoundTrip(t *testing.T) {
	priorities := []string{"Baixa", "media", "ALTA"}
	statuses := []string{"Pendente", "emandamento", "CONCLUIDA"}
	descriptions := []string{"", "two litres"}

	for _, p := range priorities {
		for _, s := range statuses {
			for _, d := range descriptions {
				req := CreateTaskRequest{Title: "Buy milk", Description: d, Priority: p, Status: s}

				got := ToRequest(req.ToTask())

				assert.Equal(t, req, got, "priority=%s status=%s description=%q", p, s, d)
			}
		}
	}
}

func TestFromTask(t *testing.T) {
	created := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	task := &model.Task{
		ID:          9,
		Title:       "Write report",
		Description: "quarterly",
		Priority:    model.PriorityMedium,
		Status:      model.StatusInProgress,
		DateCreated: created,
		UserID:      3,
	}

	resp := FromTask(task)

	assert.Equal(t, int64(9), resp.ID)
	assert.Equal(t, "Write report", resp.Title)
	assert.Equal(t, "quarterly", resp.Description)
	assert.Equal(t, "Media", resp.Priority)
	assert.Equal(t, "EmAndamento", resp.Status)
	assert.Equal(t, created, resp.DateCreated)
}

func TestFromTasks_PreservesOrder(t *testing.T) {
	tasks := []model.Task{{ID: 3, Title: "c"}, {ID: 1, Title: "a"}, {ID: 2, Title: "b"}}

	got := FromTasks(tasks)

	require.Len(t, got, 3)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)
	assert.Equal(t, int64(2), got[2].ID)
}

func TestFromTasks_EmptyIsNonNil(t *testing.T) {
	got := FromTasks(nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestApply_KeepsIdentity(t *testing.T) {
	created := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	task := &model.Task{ID: 5, UserID: 7, DateCreated: created, Title: "old"}

	CreateTaskRequest{Title: "new", Description: "d", Priority: "Alta", Status: "Concluida"}.Apply(task)

	assert.Equal(t, int64(5), task.ID)
	assert.Equal(t, int64(7), task.UserID)
	assert.Equal(t, created, task.DateCreated)
	assert.Equal(t, "new", task.Title)
	assert.Equal(t, model.PriorityHigh, task.Priority)
	assert.Equal(t, model.StatusDone, task.Status)
}

func TestCreateTaskRequest_DescriptionKeys(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"description key", `{"title":"t","description":"new key","priority":"Alta","status":"Pendente"}`, "new key"},
		{"legacy descriptions key", `{"title":"t","descriptions":"old key","priority":"Alta","status":"Pendente"}`, "old key"},
		{"both keys prefer description", `{"title":"t","description":"new","descriptions":"old","priority":"Alta","status":"Pendente"}`, "new"},
		{"neither key", `{"title":"t","priority":"Alta","status":"Pendente"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreateTaskRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			assert.Equal(t, tt.want, req.Description)
			assert.Equal(t, "t", req.Title)
			assert.Equal(t, "Alta", req.Priority)
			assert.Equal(t, "Pendente", req.Status)
		})
	}
}

func TestCreateTaskRequest_MalformedJSON(t *testing.T) {
	var req CreateTaskRequest
	assert.Error(t, json.Unmarshal([]byte(`{"title":`), &req))
	assert.Error(t, json.Unmarshal([]byte(`{"descriptions":42}`), &req))
}
