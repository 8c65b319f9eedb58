package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/gorilla/mux"

	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/types"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type validation map[string][]string

func (v validation) add(field, msg string) {
	v[field] = append(v[field], msg)
}

func (v validation) failed(w http.ResponseWriter) bool {
	if len(v) == 0 {
		return false
	}
	writeError(w, http.StatusUnprocessableEntity, "The given data was invalid.", v)
	return true
}

func (v validation) name(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		v.add("name", "The name field is required.")
	} else if len(name) > 255 {
		v.add("name", "The name field must not be greater than 255 characters.")
	}
	return name
}

func (v validation) color(color string) {
	if color != "" && !hexColor.MatchString(color) {
		v.add("color", "The color field must be a valid hex color.")
	}
}

func pathID(r *http.Request) types.ID {
	return types.ID(mux.Vars(r)["id"])
}

// decodePatch decodes a PUT body keeping track of which keys were sent
func decodePatch(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, bool) {
	var raw map[string]json.RawMessage
	if !decode(w, r, &raw) {
		return nil, false
	}
	return raw, true
}

func field[T any](raw map[string]json.RawMessage, key string, dst *T) (bool, error) {
	data, ok := raw[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return true, fmt.Errorf("the %s field is invalid", key)
	}
	return true, nil
}

// authorize returns false after writing 404/403 when the user may not access workspaceID.
// Must be called with the store lock held.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request, workspaceID types.ID) bool {
	ws, ok := s.store.workspaces[workspaceID]
	if !ok {
		writeError(w, http.StatusNotFound, "Not found.", nil)
		return false
	}
	if ws.OwnerID != currentUserID(r) {
		writeError(w, http.StatusForbidden, "This action is unauthorized.", nil)
		return false
	}
	return true
}

// ============================================================================
// Workspaces
// ============================================================================

func (s *Server) listWorkspaces(w http.ResponseWriter, r *http.Request) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	user := currentUserID(r)
	out := sorted(st, st.workspaces, func(ws *models.Workspace) types.ID { return ws.ID }, func(ws *models.Workspace) bool {
		return ws.OwnerID == user
	})
	writeData(w, http.StatusOK, out)
}

func (s *Server) getWorkspace(w http.ResponseWriter, r *http.Request) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	id := pathID(r)
	if !s.authorize(w, r, id) {
		return
	}
	writeData(w, http.StatusOK, st.workspaces[id])
}

func (s *Server) createWorkspace(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if !decode(w, r, &req) {
		return
	}
	v := validation{}
	name := v.name(req.Name)
	if v.failed(w) {
		return
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	ws := &models.Workspace{
		ID:          st.stringID(),
		Name:        name,
		Slug:        slug(name),
		Description: req.Description,
		OwnerID:     currentUserID(r),
		Role:        models.RoleOwner,
		Settings:    map[string]any{},
		CreatedAt:   st.stamp(),
		UpdatedAt:   st.stamp(),
	}
	st.workspaces[ws.ID] = ws
	writeData(w, http.StatusCreated, ws)
}

func (s *Server) updateWorkspace(w http.ResponseWriter, r *http.Request) {
	raw, ok := decodePatch(w, r)
	if !ok {
		return
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	id := pathID(r)
	if !s.authorize(w, r, id) {
		return
	}
	ws := *st.workspaces[id]

	v := validation{}
	var name, description string
	if sent, err := field(raw, "name", &name); sent {
		if err != nil {
			v.add("name", err.Error())
		}
		ws.Name = v.name(name)
		ws.Slug = slug(ws.Name)
	}
	if sent, err := field(raw, "description", &description); sent {
		if err != nil {
			v.add("description", err.Error())
		}
		ws.Description = description
	}
	var settings map[string]any
	if sent, err := field(raw, "settings", &settings); sent {
		if err != nil {
			v.add("settings", err.Error())
		}
		ws.Settings = settings
	}
	if v.failed(w) {
		return
	}

	ws.UpdatedAt = st.stamp()
	st.workspaces[id] = &ws
	writeData(w, http.StatusOK, &ws)
}

func (s *Server) deleteWorkspace(w http.ResponseWriter, r *http.Request) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	id := pathID(r)
	if !s.authorize(w, r, id) {
		return
	}
	if len(st.spacesIn(id)) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "Cannot delete a workspace that still has spaces.", nil)
		return
	}
	delete(st.workspaces, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) lastVisited(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if !decode(w, r, &req) {
		return
	}
	v := validation{}
	if !strings.HasPrefix(req.Path, "/") {
		v.add("path", "The path field must be an absolute path.")
	}
	if v.failed(w) {
		return
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	id := pathID(r)
	if !s.authorize(w, r, id) {
		return
	}
	st.workspaces[id].LastVisitedPath = req.Path
	w.WriteHeader(http.StatusNoContent)
}

// ============================================================================
// Spaces
// ============================================================================

func (s *Server) listSpaces(w http.ResponseWriter, r *http.Request) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	id := pathID(r)
	if !s.authorize(w, r, id) {
		return
	}
	writeData(w, http.StatusOK, st.spacesIn(id))
}

func (s *Server) getSpace(w http.ResponseWriter, r *http.Request) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	id := pathID(r)
	if !s.authorize(w, r, st.workspaceOfSpace(id)) {
		return
	}
	writeData(w, http.StatusOK, st.spaces[id])
}

func (s *Server) createSpace(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		Visibility string `json:"visibility"`
		Color      string `json:"color"`
	}
	if !decode(w, r, &req) {
		return
	}
	v := validation{}
	name := v.name(req.Name)
	visibility, err := models.ParseVisibility(req.Visibility)
	if err != nil {
		v.add("visibility", "The selected visibility is invalid.")
	}
	v.color(req.Color)
	if v.failed(w) {
		return
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	workspaceID := pathID(r)
	if !s.authorize(w, r, workspaceID) {
		return
	}
	sp := &models.Space{
		ID:          st.stringID(),
		WorkspaceID: workspaceID,
		Name:        name,
		Visibility:  visibility,
		Color:       req.Color,
		CreatedAt:   st.stamp(),
		UpdatedAt:   st.stamp(),
	}
	st.spaces[sp.ID] = sp
	writeData(w, http.StatusCreated, sp)
}

func (s *Server) updateSpace(w http.ResponseWriter, r *http.Request) {
	raw, ok := decodePatch(w, r)
	if !ok {
		return
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	id := pathID(r)
	if !s.authorize(w, r, st.workspaceOfSpace(id)) {
		return
	}
	sp := *st.spaces[id]

	v := validation{}
	var name, visibility, color string
	var archived bool
	if sent, _ := field(raw, "name", &name); sent {
		sp.Name = v.name(name)
	}
	if sent, _ := field(raw, "visibility", &visibility); sent {
		parsed, err := models.ParseVisibility(visibility)
		if err != nil {
			v.add("visibility", "The selected visibility is invalid.")
		}
		sp.Visibility = parsed
	}
	if sent, _ := field(raw, "color", &color); sent {
		v.color(color)
		sp.Color = color
	}
	if sent, err := field(raw, "is_archived", &archived); sent {
		if err != nil {
			v.add("is_archived", err.Error())
		}
		sp.IsArchived = archived
	}
	if v.failed(w) {
		return
	}

	sp.UpdatedAt = st.stamp()
	st.spaces[id] = &sp
	writeData(w, http.StatusOK, &sp)
}

func (s *Server) deleteSpace(w http.ResponseWriter, r *http.Request) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	id := pathID(r)
	if !s.authorize(w, r, st.workspaceOfSpace(id)) {
		return
	}
	if len(st.groupsIn(id)) > 0 || len(st.listsIn(id)) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "Cannot delete a space that still has groups or lists.", nil)
		return
	}
	delete(st.spaces, id)
	w.WriteHeader(http.StatusNoContent)
}

// ============================================================================
// Groups
// ============================================================================

func (s *Server) listGroups(w http.ResponseWriter, r *http.Request) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	id := pathID(r)
	if !s.authorize(w, r, st.workspaceOfSpace(id)) {
		return
	}
	writeData(w, http.StatusOK, st.groupsIn(id))
}

func (s *Server) getGroup(w http.ResponseWriter, r *http.Request) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	g, ok := st.groups[pathID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "Not found.", nil)
		return
	}
	if !s.authorize(w, r, st.workspaceOfSpace(g.SpaceID)) {
		return
	}
	writeData(w, http.StatusOK, g)
}

func (s *Server) createGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if !decode(w, r, &req) {
		return
	}
	v := validation{}
	name := v.name(req.Name)
	v.color(req.Color)
	if v.failed(w) {
		return
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	spaceID := pathID(r)
	if !s.authorize(w, r, st.workspaceOfSpace(spaceID)) {
		return
	}
	g := &models.Group{
		ID:        st.stringID(),
		SpaceID:   spaceID,
		Name:      name,
		Color:     req.Color,
		CreatedAt: st.stamp(),
		UpdatedAt: st.stamp(),
	}
	st.groups[g.ID] = g
	writeData(w, http.StatusCreated, g)
}

func (s *Server) updateGroup(w http.ResponseWriter, r *http.Request) {
	raw, ok := decodePatch(w, r)
	if !ok {
		return
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	current, found := st.groups[pathID(r)]
	if !found {
		writeError(w, http.StatusNotFound, "Not found.", nil)
		return
	}
	if !s.authorize(w, r, st.workspaceOfSpace(current.SpaceID)) {
		return
	}
	g := *current

	v := validation{}
	var name, color string
	if sent, _ := field(raw, "name", &name); sent {
		g.Name = v.name(name)
	}
	if sent, _ := field(raw, "color", &color); sent {
		v.color(color)
		g.Color = color
	}
	if v.failed(w) {
		return
	}

	g.UpdatedAt = st.stamp()
	st.groups[g.ID] = &g
	writeData(w, http.StatusOK, &g)
}

func (s *Server) deleteGroup(w http.ResponseWriter, r *http.Request) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	g, ok := st.groups[pathID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "Not found.", nil)
		return
	}
	if !s.authorize(w, r, st.workspaceOfSpace(g.SpaceID)) {
		return
	}
	if len(st.listsInGroup(g.ID)) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "Cannot delete a group that still has lists.", nil)
		return
	}
	delete(st.groups, g.ID)
	w.WriteHeader(http.StatusNoContent)
}

// ============================================================================
// Lists
// ============================================================================

func (s *Server) listLists(w http.ResponseWriter, r *http.Request) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	id := pathID(r)
	if !s.authorize(w, r, st.workspaceOfSpace(id)) {
		return
	}
	writeData(w, http.StatusOK, st.listsIn(id))
}

func (s *Server) getList(w http.ResponseWriter, r *http.Request) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	id := pathID(r)
	if !s.authorize(w, r, st.workspaceOfList(id)) {
		return
	}
	writeData(w, http.StatusOK, st.lists[id])
}

// checkGroup validates that groupID is a group of spaceID. Lock held.
func (st *store) checkGroup(v validation, spaceID types.ID, groupID *types.ID) {
	if groupID == nil || groupID.Empty() {
		return
	}
	if g, ok := st.groups[*groupID]; !ok || g.SpaceID != spaceID {
		v.add("group_id", "The selected group id is invalid.")
	}
}

func (s *Server) createList(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string              `json:"name"`
		GroupID      *types.ID           `json:"group_id"`
		StatusSchema models.StatusSchema `json:"status_schema"`
	}
	if !decode(w, r, &req) {
		return
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	spaceID := pathID(r)
	if !s.authorize(w, r, st.workspaceOfSpace(spaceID)) {
		return
	}

	v := validation{}
	name := v.name(req.Name)
	st.checkGroup(v, spaceID, req.GroupID)
	if v.failed(w) {
		return
	}

	schema := req.StatusSchema
	if len(schema) == 0 {
		schema = models.DefaultStatusSchema()
	}
	var groupID *types.ID
	if req.GroupID != nil {
		groupID = req.GroupID.Ptr()
	}
	l := &models.TaskList{
		ID:           st.stringID(),
		SpaceID:      spaceID,
		GroupID:      groupID,
		Name:         name,
		StatusSchema: schema,
		CreatedAt:    st.stamp(),
		UpdatedAt:    st.stamp(),
	}
	st.lists[l.ID] = l
	writeData(w, http.StatusCreated, l)
}

func (s *Server) updateList(w http.ResponseWriter, r *http.Request) {
	raw, ok := decodePatch(w, r)
	if !ok {
		return
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	id := pathID(r)
	if !s.authorize(w, r, st.workspaceOfList(id)) {
		return
	}
	l := *st.lists[id]

	v := validation{}
	var name string
	var groupID *types.ID
	var schema models.StatusSchema
	var archived bool
	if sent, _ := field(raw, "name", &name); sent {
		l.Name = v.name(name)
	}
	if sent, err := field(raw, "group_id", &groupID); sent {
		if err != nil {
			v.add("group_id", err.Error())
		}
		st.checkGroup(v, l.SpaceID, groupID)
		if groupID != nil {
			groupID = groupID.Ptr()
		}
		l.GroupID = groupID
	}
	if sent, err := field(raw, "status_schema", &schema); sent {
		if err != nil || len(schema) == 0 {
			v.add("status_schema", "The status schema must define at least one status.")
		}
		l.StatusSchema = schema
	}
	if sent, _ := field(raw, "is_archived", &archived); sent {
		l.IsArchived = archived
	}
	if v.failed(w) {
		return
	}

	l.UpdatedAt = st.stamp()
	st.lists[id] = &l
	writeData(w, http.StatusOK, &l)
}

func (s *Server) deleteList(w http.ResponseWriter, r *http.Request) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	id := pathID(r)
	if !s.authorize(w, r, st.workspaceOfList(id)) {
		return
	}
	if len(st.tasksIn(id)) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "Cannot delete a list that still has tasks.", nil)
		return
	}
	delete(st.lists, id)
	w.WriteHeader(http.StatusNoContent)
}

// ============================================================================
// Tasks
// ============================================================================

func (s *Server) listAllTasks(w http.ResponseWriter, r *http.Request) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	user := currentUserID(r)
	out := sorted(st, st.tasks, func(t *models.Task) types.ID { return t.ID }, func(t *models.Task) bool {
		ws, ok := st.workspaces[st.workspaceOfTask(t.ID)]
		return ok && ws.OwnerID == user
	})
	writeData(w, http.StatusOK, out)
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	id := pathID(r)
	if !s.authorize(w, r, st.workspaceOfList(id)) {
		return
	}
	writeData(w, http.StatusOK, st.tasksIn(id))
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	id := pathID(r)
	if !s.authorize(w, r, st.workspaceOfTask(id)) {
		return
	}
	writeData(w, http.StatusOK, st.tasks[id])
}

// applyTaskFields validates and copies task fields present in raw. Lock held.
func (st *store) applyTaskFields(v validation, t *models.Task, raw map[string]json.RawMessage) {
	var title string
	if sent, _ := field(raw, "title", &title); sent {
		title = strings.TrimSpace(title)
		if title == "" {
			v.add("title", "The title field is required.")
		}
		t.Title = title
	}

	var description *string
	if sent, _ := field(raw, "description", &description); sent {
		t.Description = description
	}

	var status string
	if sent, _ := field(raw, "status", &status); sent {
		if !st.lists[t.ListID].Schema().Has(status) {
			v.add("status", "The selected status is invalid.")
		}
		t.Status = status
	}

	var priority string
	if sent, _ := field(raw, "priority", &priority); sent {
		p, err := models.ParsePriority(priority)
		if err != nil {
			v.add("priority", "The selected priority is invalid.")
		}
		t.Priority = p
	}

	var due *models.Date
	if sent, err := field(raw, "due_date", &due); sent {
		if err != nil {
			v.add("due_date", "The due date field must be a valid date.")
		}
		t.DueDate = due
	}

	var assignee *types.ID
	if sent, _ := field(raw, "assigned_to", &assignee); sent {
		t.AssignedTo = nil
		t.Assignee = nil
		if assignee != nil && !assignee.Empty() {
			user := st.userByID(*assignee)
			if user == nil {
				v.add("assigned_to", "The selected assigned to is invalid.")
			}
			t.AssignedTo = assignee
			t.Assignee = user
		}
	}

	var project *types.ID
	if sent, _ := field(raw, "project_id", &project); sent {
		t.ProjectID = nil
		if project != nil && !project.Empty() {
			if _, ok := st.projects[*project]; !ok {
				v.add("project_id", "The selected project id is invalid.")
			}
			t.ProjectID = project
		}
	}
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	raw, ok := decodePatch(w, r)
	if !ok {
		return
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	listID := pathID(r)
	if !s.authorize(w, r, st.workspaceOfList(listID)) {
		return
	}

	t := &models.Task{
		ListID:    listID,
		UserID:    currentUserID(r),
		Status:    st.lists[listID].Schema().Keys()[0],
		Priority:  models.PriorityMedium,
		CreatedAt: st.now(),
	}
	v := validation{}
	if _, ok := raw["title"]; !ok {
		v.add("title", "The title field is required.")
	}
	st.applyTaskFields(v, t, raw)
	if v.failed(w) {
		return
	}

	t.ID = st.numericID()
	t.UpdatedAt = st.stamp()
	st.tasks[t.ID] = t
	writeData(w, http.StatusCreated, t)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	raw, ok := decodePatch(w, r)
	if !ok {
		return
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	id := pathID(r)
	if !s.authorize(w, r, st.workspaceOfTask(id)) {
		return
	}
	t := *st.tasks[id]
	previous := t.Status

	v := validation{}
	st.applyTaskFields(v, &t, raw)
	if v.failed(w) {
		return
	}

	t.UpdatedAt = st.stamp()
	st.tasks[id] = &t

	if t.Status != previous {
		c := &models.TaskComment{
			ID:        st.numericID(),
			TaskID:    id,
			UserID:    currentUserID(r),
			Comment:   fmt.Sprintf("Status changed from %s to %s", previous, t.Status),
			Type:      models.CommentStatusChange,
			CreatedAt: st.now(),
		}
		st.comments[c.ID] = c
	}
	writeData(w, http.StatusOK, &t)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	id := pathID(r)
	if !s.authorize(w, r, st.workspaceOfTask(id)) {
		return
	}
	for _, c := range st.commentsOn(id) {
		delete(st.comments, c.ID)
	}
	for _, a := range st.attachmentsOn(id) {
		delete(st.attachments, a.ID)
	}
	delete(st.tasks, id)
	w.WriteHeader(http.StatusNoContent)
}

// ============================================================================
// Comments and attachments
// ============================================================================

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	id := pathID(r)
	if !s.authorize(w, r, st.workspaceOfTask(id)) {
		return
	}
	writeData(w, http.StatusOK, st.commentsOn(id))
}

func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Comment string             `json:"comment"`
		Type    models.CommentType `json:"type"`
	}
	if !decode(w, r, &req) {
		return
	}
	v := validation{}
	if strings.TrimSpace(req.Comment) == "" {
		v.add("comment", "The comment field is required.")
	}
	switch req.Type {
	case "":
		req.Type = models.CommentNote
	case models.CommentNote, models.CommentStatusChange, models.CommentAssignment:
	default:
		v.add("type", "The selected type is invalid.")
	}
	if v.failed(w) {
		return
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	taskID := pathID(r)
	if !s.authorize(w, r, st.workspaceOfTask(taskID)) {
		return
	}
	c := &models.TaskComment{
		ID:        st.numericID(),
		TaskID:    taskID,
		UserID:    currentUserID(r),
		Comment:   strings.TrimSpace(req.Comment),
		Type:      req.Type,
		CreatedAt: st.now(),
	}
	st.comments[c.ID] = c
	writeData(w, http.StatusCreated, c)
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	c, ok := st.comments[pathID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "Not found.", nil)
		return
	}
	if !s.authorize(w, r, st.workspaceOfTask(c.TaskID)) {
		return
	}
	if c.UserID != currentUserID(r) {
		writeError(w, http.StatusForbidden, "This action is unauthorized.", nil)
		return
	}
	delete(st.comments, c.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listAttachments(w http.ResponseWriter, r *http.Request) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	id := pathID(r)
	if !s.authorize(w, r, st.workspaceOfTask(id)) {
		return
	}
	writeData(w, http.StatusOK, st.attachmentsOn(id))
}

const maxUpload = 10 << 20

func (s *Server) createAttachment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "The given data was invalid.",
			map[string][]string{"file": {"The file field is required."}})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "The given data was invalid.",
			map[string][]string{"file": {"The file field is required."}})
		return
	}
	defer file.Close()

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	taskID := pathID(r)
	if !s.authorize(w, r, st.workspaceOfTask(taskID)) {
		return
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	a := &models.TaskAttachment{
		ID:        st.numericID(),
		TaskID:    taskID,
		FileName:  header.Filename,
		FileType:  contentType,
		FileSize:  header.Size,
		CreatedAt: st.now(),
	}
	a.FilePath = fmt.Sprintf("attachments/%s/%s-%s", taskID, a.ID, header.Filename)
	st.attachments[a.ID] = a
	writeData(w, http.StatusCreated, a)
}

func (s *Server) deleteAttachment(w http.ResponseWriter, r *http.Request) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	a, ok := st.attachments[pathID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "Not found.", nil)
		return
	}
	if !s.authorize(w, r, st.workspaceOfTask(a.TaskID)) {
		return
	}
	delete(st.attachments, a.ID)
	w.WriteHeader(http.StatusNoContent)
}

// ============================================================================
// Projects
// ============================================================================

// projectFor returns the project after writing 404/403 when it is missing or
// belongs to someone else. Lock held.
func (s *Server) projectFor(w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	st := s.store
	p, ok := st.projects[pathID(r)]
	if !ok {
		writeError(w, http.StatusNotFound, "Not found.", nil)
		return nil, false
	}
	if st.projectOwners[p.ID] != currentUserID(r) {
		writeError(w, http.StatusForbidden, "This action is unauthorized.", nil)
		return nil, false
	}
	return p, true
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	writeData(w, http.StatusOK, st.projectsOf(currentUserID(r)))
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	if p, ok := s.projectFor(w, r); ok {
		writeData(w, http.StatusOK, p)
	}
}

type projectForm struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var req projectForm
	if !decode(w, r, &req) {
		return
	}
	v := validation{}
	name := v.name(req.Name)
	if v.failed(w) {
		return
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	p := &models.Project{
		ID:          st.numericID(),
		Name:        name,
		Description: req.Description,
		CreatedAt:   st.now(),
		UpdatedAt:   st.stamp(),
	}
	st.projects[p.ID] = p
	st.projectOwners[p.ID] = currentUserID(r)
	writeData(w, http.StatusCreated, p)
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	var req projectForm
	if !decode(w, r, &req) {
		return
	}

	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	current, ok := s.projectFor(w, r)
	if !ok {
		return
	}
	v := validation{}
	name := v.name(req.Name)
	if v.failed(w) {
		return
	}

	p := *current
	p.Name = name
	p.Description = req.Description
	p.UpdatedAt = st.stamp()
	st.projects[p.ID] = &p
	writeData(w, http.StatusOK, &p)
}

// deleteProject unlinks the project's tasks; the tasks themselves stay in their lists
func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	p, ok := s.projectFor(w, r)
	if !ok {
		return
	}
	for _, t := range st.tasksInProject(p.ID) {
		unlinked := *t
		unlinked.ProjectID = nil
		unlinked.UpdatedAt = st.stamp()
		st.tasks[t.ID] = &unlinked
	}
	delete(st.projects, p.ID)
	delete(st.projectOwners, p.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listProjectTasks(w http.ResponseWriter, r *http.Request) {
	st := s.store
	st.mu.Lock()
	defer st.mu.Unlock()

	p, ok := s.projectFor(w, r)
	if !ok {
		return
	}
	writeData(w, http.StatusOK, st.tasksInProject(p.ID))
}
