// Package handler implements the HTTP endpoints. Every response uses the
// uniform envelope {code, msg, data?}: code 0 on success, a stable apierr
// code on failure, with the HTTP status carrying only the broad class.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/momoplay/rank-server/internal/apierr"
)

// envelope is the wire shape of a success response carrying data. Data
// has no omitempty: an empty top-N page must serialize as [], not vanish.
type envelope struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}

// ok writes the success envelope. Pass nil data for mutation acks.
func ok(c *gin.Context, data any) {
	if data == nil {
		c.JSON(http.StatusOK, gin.H{"code": apierr.CodeOK, "msg": "success"})
		return
	}
	c.JSON(http.StatusOK, envelope{Code: apierr.CodeOK, Msg: "success", Data: data})
}

// fail resolves err to its wire code and writes the error envelope. The
// error is also attached to the gin context so the access log sees it.
func fail(c *gin.Context, err error) {
	e := apierr.Resolve(err)
	c.Error(err)
	c.AbortWithStatusJSON(e.Status, gin.H{"code": e.Code, "msg": e.Msg})
}
