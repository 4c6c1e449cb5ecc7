package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/app/views"
	"github.com/yigit/uniconnect/internal/middleware"
	"github.com/yigit/uniconnect/internal/pkg/helpers"
)

// Request sequencing. A view sends "seq" with every request and an instance
// id, generated once per mounted view, in X-View-Instance or "view".
const (
	HeaderRequestSequence   = "X-Request-Sequence"
	HeaderRequestSuperseded = "X-Request-Superseded"
	HeaderViewInstance      = "X-View-Instance"

	maxViewInstanceLen = 64
)

// pageFrom reads page and size from the query string.
func pageFrom(ctx *gin.Context) models.Page {
	page, size := helpers.ParsePaginationParams(ctx)
	return models.Page{Page: page, Size: size}
}

// sessionFrom returns the session attached by the gate, or nil.
func sessionFrom(ctx *gin.Context) *models.Session {
	session, _ := middleware.GetSession(ctx)
	return session
}

func respond(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, dto.NewSuccessResponse(data))
}

// sequencedRequest tracks the client's "seq" for one view instance so a
// response to a superseded request is flagged instead of overwriting newer
// data. Without an instance id the sequence is only echoed back.
type sequencedRequest struct {
	sequencer *views.Sequencer
	key       string
	seq       uint64
	present   bool
	tracked   bool
}

func viewInstance(ctx *gin.Context) string {
	instance := ctx.GetHeader(HeaderViewInstance)
	if instance == "" {
		instance = ctx.Query("view")
	}
	if len(instance) > maxViewInstanceLen {
		return ""
	}
	return instance
}

func beginSequenced(ctx *gin.Context, sequencer *views.Sequencer, view string) sequencedRequest {
	req := sequencedRequest{sequencer: sequencer}
	raw := ctx.Query("seq")
	if raw == "" {
		return req
	}
	seq, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return req
	}
	req.seq = seq
	req.present = true

	instance := viewInstance(ctx)
	if instance == "" || sequencer == nil {
		return req
	}

	user := ""
	if session := sessionFrom(ctx); session != nil {
		user = session.UserID
	}
	req.key = user + ":" + view + ":" + instance
	req.tracked = true
	sequencer.Observe(req.key, seq)
	return req
}

// respond writes data, or an empty superseded marker when a newer request
// for the same view has been issued meanwhile.
func (r sequencedRequest) respond(ctx *gin.Context, data interface{}) {
	if !r.present {
		respond(ctx, http.StatusOK, data)
		return
	}

	ctx.Header(HeaderRequestSequence, strconv.FormatUint(r.seq, 10))
	if r.tracked && !r.sequencer.IsLatest(r.key, r.seq) {
		ctx.Header(HeaderRequestSuperseded, "true")
		respond(ctx, http.StatusOK, dto.SequencedResponse{Sequence: r.seq, Superseded: true})
		return
	}
	respond(ctx, http.StatusOK, dto.SequencedResponse{Sequence: r.seq, Payload: data})
}
