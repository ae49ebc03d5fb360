package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jobconnect/pipeline/internal/domain/models"
	"github.com/samber/lo"
)

func (s *Server) listNotifications(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	feed, err := s.notifications.ListRecent(c.Request.Context(), actorID(c), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"notifications": lo.Map(feed.Notifications,
			func(n models.Notification, _ int) notificationResponse { return toNotificationResponse(n) }),
		"unread_count": feed.UnreadCount,
	})
}

func (s *Server) unreadCount(c *gin.Context) {
	count, err := s.notifications.UnreadCount(c.Request.Context(), actorID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

func (s *Server) markNotificationRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	unread, err := s.notifications.MarkRead(c.Request.Context(), id, actorID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": unread})
}

func (s *Server) markAllNotificationsRead(c *gin.Context) {
	affected, err := s.notifications.MarkAllRead(c.Request.Context(), actorID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked": affected, "unread_count": 0})
}

func (s *Server) deleteNotification(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	unread, err := s.notifications.Delete(c.Request.Context(), id, actorID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": unread})
}
