package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"staffsync/internal/common"
	"staffsync/internal/models"
	"staffsync/internal/services"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

const maxResumeSize = 10 << 20 // 10 MiB

type RecruitmentHandlers struct {
	recruitmentService services.RecruitmentService
}

func NewRecruitmentHandlers(recruitmentService services.RecruitmentService) *RecruitmentHandlers {
	return &RecruitmentHandlers{
		recruitmentService: recruitmentService,
	}
}

type candidateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Position string `json:"position"`
}

func (h *RecruitmentHandlers) validateCandidate(req *candidateRequest) error {
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := common.ValidateRequiredString(req.Email, "email"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := common.ValidateRequiredString(req.Position, "position"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// CreateCandidate handles POST /candidates
func (h *RecruitmentHandlers) CreateCandidate(c echo.Context) error {
	ctx := c.Request().Context()

	var req candidateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := h.validateCandidate(&req); err != nil {
		return err
	}

	candidate, err := h.recruitmentService.Create(ctx, services.CandidateInput{
		Name:     req.Name,
		Email:    req.Email,
		Position: req.Position,
	}, common.ActorFromContext(ctx))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create candidate")
	}
	return c.JSON(http.StatusCreated, candidate)
}

// UpdateCandidate handles PUT /candidates/:id
func (h *RecruitmentHandlers) UpdateCandidate(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req candidateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := h.validateCandidate(&req); err != nil {
		return err
	}

	candidate, err := h.recruitmentService.Update(ctx, id, services.CandidateInput{
		Name:     req.Name,
		Email:    req.Email,
		Position: req.Position,
	}, common.ActorFromContext(ctx))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Candidate")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update candidate")
	}
	return c.JSON(http.StatusOK, candidate)
}

// MoveCandidateStage handles PUT /candidates/:id/stage
func (h *RecruitmentHandlers) MoveCandidateStage(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req struct {
		Stage string `json:"stage"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	candidate, err := h.recruitmentService.MoveStage(ctx, id, req.Stage, common.ActorFromContext(ctx))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownStage):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, pgx.ErrNoRows):
			return common.SendNotFoundError(c, "Candidate")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to move candidate stage")
		}
	}
	return c.JSON(http.StatusOK, candidate)
}

// DeleteCandidate handles DELETE /candidates/:id
func (h *RecruitmentHandlers) DeleteCandidate(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.recruitmentService.Delete(ctx, id, common.ActorFromContext(ctx)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Candidate")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete candidate")
	}
	return c.NoContent(http.StatusNoContent)
}

// GetCandidate handles GET /candidates/:id
func (h *RecruitmentHandlers) GetCandidate(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	candidate, err := h.recruitmentService.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Candidate")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to get candidate")
	}
	return c.JSON(http.StatusOK, candidate)
}

// ListCandidates handles GET /candidates
func (h *RecruitmentHandlers) ListCandidates(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, offset = common.ValidatePaginationParams(limit, offset)

	var stage *string
	if stageParam := c.QueryParam("stage"); stageParam != "" {
		if !models.ValidCandidateStage(stageParam) {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown recruitment stage")
		}
		stage = &stageParam
	}

	candidates, err := h.recruitmentService.List(c.Request().Context(), stage, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list candidates")
	}
	return c.JSON(http.StatusOK, candidates)
}

// UploadResume handles POST /candidates/:id/resume
func (h *RecruitmentHandlers) UploadResume(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "resume file is required")
	}
	if fileHeader.Size > maxResumeSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "resume exceeds the 10 MiB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read resume file")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}

	candidate, err := h.recruitmentService.AttachResume(ctx, id, file, fileHeader.Size, contentType, common.ActorFromContext(ctx))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Candidate")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store resume")
	}
	return c.JSON(http.StatusOK, candidate)
}

// GetResumeURL handles GET /candidates/:id/resume
func (h *RecruitmentHandlers) GetResumeURL(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	url, err := h.recruitmentService.ResumeURL(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.SendNotFoundError(c, "Candidate")
		}
		return echo.NewHTTPError(http.StatusNotFound, "No resume on file")
	}

	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
