package controllers

import (
	"io"

	"github.com/gin-gonic/gin"

	"vibecheck/internal/services"
)

type FeedController struct {
	feedService services.FeedServiceInterface
}

func NewFeedController(feedService services.FeedServiceInterface) *FeedController {
	return &FeedController{
		feedService: feedService,
	}
}

// Stream pushes the full current location set to the client as a
// server-sent event whenever any writer changes the collection.
func (f *FeedController) Stream(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	snapshots, unsubscribe := f.feedService.Subscribe()
	defer unsubscribe()

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case snapshot, ok := <-snapshots:
			if !ok {
				return false
			}
			c.SSEvent("locations", snapshot)
			return true
		}
	})
}
