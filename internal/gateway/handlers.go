package gateway

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/middleware"
)

// Handler forwards each route to exactly one downstream command and returns
// the reply verbatim; only failures get translated.
type Handler struct {
	clients *Clients
}

func NewHandler(clients *Clients) *Handler {
	return &Handler{clients: clients}
}

func (h *Handler) Login(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	reply, err := h.clients.Auth.Login(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	replyJSON(c, reply)
}

func (h *Handler) Me(c *gin.Context) {
	userID, _ := c.Get(middleware.ContextUserID)

	reply, err := h.clients.Auth.ValidateUser(c.Request.Context(), userID.(string))
	if err != nil {
		respondError(c, err)
		return
	}
	// An empty projection means the token's subject no longer exists.
	if len(reply) == 0 || bytes.Equal(reply, []byte("null")) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	replyJSON(c, reply)
}

func (h *Handler) Upload(c *gin.Context) {
	file := filePayload{}
	header, err := c.FormFile("file")
	if err == nil {
		opened, openErr := header.Open()
		if openErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
			return
		}
		defer opened.Close()
		buffer, readErr := io.ReadAll(opened)
		if readErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
			return
		}
		file = filePayload{
			Buffer:       buffer,
			OriginalName: header.Filename,
			MimeType:     header.Header.Get("Content-Type"),
			Size:         header.Size,
		}
	}

	reply, err := h.clients.Upload.UploadFile(c.Request.Context(), file)
	if err != nil {
		respondError(c, err)
		return
	}
	replyJSON(c, reply)
}

func (h *Handler) CreateEmployee(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	reply, err := h.clients.Employee.Create(c.Request.Context(), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusCreated, "application/json; charset=utf-8", reply)
}

func (h *Handler) GetAllEmployees(c *gin.Context) {
	reply, err := h.clients.Employee.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	replyJSON(c, reply)
}

func (h *Handler) GetEmployee(c *gin.Context) {
	reply, err := h.clients.Employee.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	replyJSON(c, reply)
}

func (h *Handler) UpdateEmployee(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	reply, err := h.clients.Employee.Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		respondError(c, err)
		return
	}
	replyJSON(c, reply)
}

func (h *Handler) DeleteEmployee(c *gin.Context) {
	reply, err := h.clients.Employee.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	replyJSON(c, reply)
}

func (h *Handler) CreateAttendance(c *gin.Context) {
	employeeID, ok := c.Get(middleware.ContextEmployeeID)
	if !ok || employeeID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	reply, err := h.clients.Attendance.Create(c.Request.Context(), employeeID.(string), body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusCreated, "application/json; charset=utf-8", reply)
}

func (h *Handler) GetAllAttendance(c *gin.Context) {
	reply, err := h.clients.Attendance.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	replyJSON(c, reply)
}

func (h *Handler) GetMyAttendance(c *gin.Context) {
	employeeID, ok := c.Get(middleware.ContextEmployeeID)
	if !ok || employeeID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	reply, err := h.clients.Attendance.GetByEmployee(c.Request.Context(), employeeID.(string))
	if err != nil {
		respondError(c, err)
		return
	}
	replyJSON(c, reply)
}

func (h *Handler) GetAttendance(c *gin.Context) {
	reply, err := h.clients.Attendance.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	replyJSON(c, reply)
}

func replyJSON(c *gin.Context, reply []byte) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", reply)
}
