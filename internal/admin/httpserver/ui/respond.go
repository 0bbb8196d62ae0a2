package ui

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/Hiuth/nexora-admin-sub001/internal/admin/apperrors"
	custommw "github.com/Hiuth/nexora-admin-sub001/internal/admin/httpserver/middleware"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/observability"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pagination"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/pcbuilds"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/subcategories"
	"github.com/Hiuth/nexora-admin-sub001/internal/admin/templates/partials"
)

const (
	msgLoadFailed = "Không thể tải dữ liệu. Vui lòng thử lại sau."
	msgNotFound   = "Không tìm thấy dữ liệu cần thao tác. Dữ liệu có thể đã bị xóa."
	msgConflict   = "Thao tác không hợp lệ với trạng thái hiện tại."
	msgBadForm    = "Không đọc được dữ liệu gửi lên."
)

// outcome describes how a mutation ended and how the refreshed fragment should report it.
type outcome struct {
	status  int
	notice  string
	warning string
	errMsg  string
	fields  map[string]string
	form    url.Values
}

func success(notice string) outcome {
	return outcome{status: http.StatusOK, notice: notice}
}

// outcomeFor maps a service error onto a response status and fragment message. Unexpected
// errors are logged.
func outcomeFor(r *http.Request, op string, err error, notice string) outcome {
	if err == nil {
		return success(notice)
	}
	var (
		validation *apperrors.ValidationError
		incomplete *pcbuilds.IncompleteBuildError
		transition *apperrors.TransitionError
	)
	switch {
	case errors.As(err, &validation):
		return outcome{status: http.StatusUnprocessableEntity, fields: validation.Fields, form: r.PostForm}
	case errors.As(err, &incomplete):
		return outcome{status: http.StatusConflict, warning: incomplete.Message()}
	case errors.Is(err, subcategories.ErrInUse):
		return outcome{status: http.StatusConflict, warning: "Danh mục con còn sản phẩm nên không thể xóa."}
	case errors.Is(err, pcbuilds.ErrPublished):
		return outcome{status: http.StatusConflict, warning: "Cấu hình đang bán. Hãy ngừng bán trước khi chỉnh sửa hoặc xóa."}
	case errors.As(err, &transition) && transition.Hint != "":
		return outcome{status: http.StatusConflict, warning: transition.Hint}
	case errors.Is(err, apperrors.ErrNotFound):
		return outcome{status: http.StatusNotFound, warning: msgNotFound}
	case errors.Is(err, apperrors.ErrConflict):
		return outcome{status: http.StatusConflict, warning: msgConflict}
	default:
		observability.FromContext(r.Context()).Error("mutation failed", zap.String("op", op), zap.Error(err))
		return outcome{status: http.StatusInternalServerError, errMsg: "Không thể lưu thay đổi. Vui lòng thử lại sau."}
	}
}

// invalid reports handler-level form problems the same way as service validation errors.
func invalid(r *http.Request, v *apperrors.ValidationError) outcome {
	return outcome{status: http.StatusUnprocessableEntity, fields: v.Fields, form: r.PostForm}
}

// listParams reads the table filters shared by fragment and mutation requests.
type listParams struct {
	search string
	status string
	page   pagination.Params
}

func readListParams(r *http.Request) listParams {
	if r.Form == nil {
		_ = r.ParseForm()
	}
	return listParams{
		search: strings.TrimSpace(r.Form.Get("q")),
		status: strings.TrimSpace(r.Form.Get("status")),
		page:   pagination.FromValues(r.Form),
	}
}

// rawQuery encodes the filters for pager links. The page itself is set by the pager.
func (p listParams) rawQuery(extra url.Values) string {
	values := url.Values{}
	if p.search != "" {
		values.Set("q", p.search)
	}
	if p.status != "" {
		values.Set("status", p.status)
	}
	if p.page.PageSize != pagination.DefaultPageSize {
		values.Set("pageSize", strconv.Itoa(p.page.PageSize))
	}
	for k, v := range extra {
		values[k] = v
	}
	return values.Encode()
}

func (h *Handlers) fragmentState(r *http.Request, params listParams, status string, out outcome) partials.FragmentState {
	ctx := r.Context()
	return partials.FragmentState{
		BasePath:   custommw.MetaFromContext(ctx).BasePath,
		CSRF:       custommw.CSRFTokenFromContext(ctx),
		RawQuery:   params.rawQuery(nil),
		Search:     params.search,
		Status:     status,
		Now:        h.now(),
		Notice:     out.notice,
		Warning:    out.warning,
		Error:      out.errMsg,
		FormErrors: out.fields,
		Form:       out.form,
	}
}

// listFailed turns a failed list call into the error row of the fragment.
func listFailed(r *http.Request, op string, err error, out outcome) outcome {
	observability.FromContext(r.Context()).Error("list failed", zap.String("op", op), zap.Error(err))
	out.errMsg = msgLoadFailed
	if out.status < http.StatusBadRequest {
		out.status = http.StatusInternalServerError
	}
	return out
}

type toast struct {
	Message string `json:"message"`
	Tone    string `json:"tone"`
}

// writeFragment renders c with the outcome status. Successful mutations also raise a toast.
func writeFragment(w http.ResponseWriter, r *http.Request, out outcome, c templ.Component) {
	status := out.status
	if status == 0 {
		status = http.StatusOK
	}
	if r.Method == http.MethodPost && status == http.StatusOK && out.notice != "" {
		setToast(w, out.notice, "success")
	}
	templ.Handler(c, templ.WithStatus(status)).ServeHTTP(w, r)
}

func setToast(w http.ResponseWriter, message, tone string) {
	payload, err := json.Marshal(map[string]toast{"toast": {Message: message, Tone: tone}})
	if err != nil {
		return
	}
	w.Header().Set("HX-Trigger", string(payload))
}

// parseForm parses the request body, answering 400 on malformed input.
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, msgBadForm, http.StatusBadRequest)
		return false
	}
	return true
}

// formInt reads an optional integer field. A malformed value records msg on v.
func formInt(values url.Values, field string, v *apperrors.ValidationError, msg string) int64 {
	raw := strings.TrimSpace(values.Get(field))
	if raw == "" {
		return 0
	}
	raw = strings.NewReplacer(".", "", ",", "", " ", "").Replace(raw)
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		v.Add(field, msg)
		return 0
	}
	return n
}
