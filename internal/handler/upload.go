package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/brianmahove/recruiting-ai/internal/ingest"
	"github.com/brianmahove/recruiting-ai/internal/match"
	"github.com/brianmahove/recruiting-ai/internal/repository"
	"github.com/brianmahove/recruiting-ai/pkg/model"
	"github.com/brianmahove/recruiting-ai/pkg/response"
	"github.com/gin-gonic/gin"
)

// UploadResume handles POST /upload: one resume scored against one job
// description. The job is either referenced by jobDescriptionId or created
// inline from job_title + job_description text.
func (h *Handler) UploadResume(c *gin.Context) {
	file, err := c.FormFile("resume")
	if err != nil {
		response.ValidationError(c, "no resume file part in the request")
		return
	}

	jd, ok := h.resolveUploadJob(c)
	if !ok {
		return
	}

	cand, parsed, ok := h.ingestResume(c, file, jd)
	if !ok {
		return
	}

	id, err := h.Repo.CreateCandidate(c.Request.Context(), cand)
	if err != nil {
		if cand.ResumeFilepath != nil {
			_ = h.ResumeStore.Delete(*cand.ResumeFilepath)
		}
		h.repoError(c, err)
		return
	}

	score := 0
	if cand.MatchScore != nil {
		score = *cand.MatchScore
	}
	response.Created(c, model.UploadResult{
		CandidateID:          id,
		JobDescriptionID:     jd.JobDescriptionID,
		MatchScore:           score,
		MatchedSkills:        cand.MatchedSkills,
		ParsedResume:         parsed,
		JobDescriptionSkills: jd.SkillsIdentified,
	})
}

// BulkUploadResumes handles POST /upload_resumes: many resumes at once, each
// processed independently so one bad file never fails the batch.
func (h *Handler) BulkUploadResumes(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.ValidationError(c, "invalid multipart form")
		return
	}
	files := form.File["resumes"]
	if len(files) == 0 {
		response.ValidationError(c, "no resumes file part in the request")
		return
	}

	var jd *model.JobDescription
	if raw := c.PostForm("jobDescriptionId"); raw != "" {
		jdID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || jdID < 1 {
			response.ValidationError(c, "invalid jobDescriptionId")
			return
		}
		found, err := h.Repo.GetJobDescriptionByID(c.Request.Context(), jdID)
		if err != nil {
			h.repoError(c, err)
			return
		}
		jd = &found
	}

	source := c.PostForm("source")
	if source == "" {
		source = "Direct Upload"
	}

	report := model.BulkUploadReport{Processed: []model.Candidate{}, Errors: []string{}}
	for _, file := range files {
		cand, err := h.ingestOne(c, file, jd, source)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", file.Filename, err))
			continue
		}
		if cand == nil {
			// duplicate email, silently skipped
			continue
		}
		report.Processed = append(report.Processed, *cand)
	}

	if len(report.Errors) > 0 {
		response.MultiStatus(c, report)
		return
	}
	response.Created(c, report)
}

// DownloadResume streams a stored resume back under its original filename.
func (h *Handler) DownloadResume(c *gin.Context) {
	filename := c.Param("filepath")
	if filename == "" || strings.ContainsAny(filename, "/\\") || strings.Contains(filename, "..") {
		response.ValidationError(c, "invalid filename")
		return
	}
	path := h.ResumeStore.Path(filename)
	c.FileAttachment(path, ingest.OriginalName(filename))
}

// resolveUploadJob resolves the upload's target job description: an existing
// one by jobDescriptionId, or a new one built from job_title/job_description
// form fields. Writes the error response itself on failure.
func (h *Handler) resolveUploadJob(c *gin.Context) (*model.JobDescription, bool) {
	if raw := c.PostForm("jobDescriptionId"); raw != "" {
		jdID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || jdID < 1 {
			response.ValidationError(c, "invalid jobDescriptionId")
			return nil, false
		}
		jd, err := h.Repo.GetJobDescriptionByID(c.Request.Context(), jdID)
		if err != nil {
			h.repoError(c, err)
			return nil, false
		}
		return &jd, true
	}

	title := c.PostForm("job_title")
	description := c.PostForm("job_description")
	if title == "" || description == "" {
		response.ValidationError(c, "either jobDescriptionId or job_title and job_description are required")
		return nil, false
	}
	jd := &model.JobDescription{
		Title:            title,
		Description:      description,
		SkillsIdentified: match.ExtractSkills(description),
	}
	id, err := h.Repo.CreateJobDescription(c.Request.Context(), jd)
	if err != nil {
		h.repoError(c, err)
		return nil, false
	}
	jd.JobDescriptionID = id
	return jd, true
}

// ingestResume runs the single-upload pipeline and writes the error response
// itself when a step fails.
func (h *Handler) ingestResume(c *gin.Context, file *multipart.FileHeader, jd *model.JobDescription) (*model.Candidate, model.ParsedResume, bool) {
	var zero model.ParsedResume

	if !ingest.AllowedResume(file.Filename) {
		response.UnsupportedFormat(c, "only PDF and DOCX resumes are accepted")
		return nil, zero, false
	}
	if file.Size > h.MaxUpload {
		response.ValidationError(c, "resume exceeds the maximum upload size")
		return nil, zero, false
	}

	stored, path, err := h.ResumeStore.Save(file)
	if err != nil {
		h.Logger.Sugar().Errorw("save resume", "filename", file.Filename, "err", err)
		response.InternalError(c, "")
		return nil, zero, false
	}

	text, err := ingest.ExtractText(path)
	if err != nil {
		_ = h.ResumeStore.Delete(stored)
		switch {
		case errors.Is(err, ingest.ErrUnsupportedFormat):
			response.UnsupportedFormat(c, err.Error())
		case errors.Is(err, ingest.ErrCorruptDocument):
			response.CorruptDocument(c, err.Error())
		default:
			h.Logger.Sugar().Errorw("extract resume text", "filename", file.Filename, "err", err)
			response.InternalError(c, "")
		}
		return nil, zero, false
	}

	parsed := ingest.ParseResume(text)
	cand := candidateFromResume(parsed, stored, jd, nil)
	return cand, parsed, true
}

// ingestOne is the bulk-upload variant: it returns errors instead of writing
// responses, and reports duplicates as (nil, nil).
func (h *Handler) ingestOne(c *gin.Context, file *multipart.FileHeader, jd *model.JobDescription, source string) (*model.Candidate, error) {
	if !ingest.AllowedResume(file.Filename) {
		return nil, errors.New("unsupported file format")
	}
	if file.Size > h.MaxUpload {
		return nil, errors.New("file exceeds the maximum upload size")
	}

	stored, path, err := h.ResumeStore.Save(file)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	text, err := ingest.ExtractText(path)
	if err != nil {
		_ = h.ResumeStore.Delete(stored)
		return nil, err
	}

	parsed := ingest.ParseResume(text)
	if parsed.Email != "" {
		exists, err := h.Repo.CandidateExistsByEmail(c.Request.Context(), parsed.Email)
		if err != nil {
			_ = h.ResumeStore.Delete(stored)
			return nil, err
		}
		if exists {
			_ = h.ResumeStore.Delete(stored)
			return nil, nil
		}
	}

	cand := candidateFromResume(parsed, stored, jd, &source)
	id, err := h.Repo.CreateCandidate(c.Request.Context(), cand)
	if err != nil {
		_ = h.ResumeStore.Delete(stored)
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, nil
		}
		return nil, err
	}

	saved, err := h.Repo.GetCandidateByID(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// candidateFromResume maps a parsed resume onto a new candidate row, scoring
// it against the job description when one was supplied.
func candidateFromResume(parsed model.ParsedResume, stored string, jd *model.JobDescription, source *string) *model.Candidate {
	cand := &model.Candidate{
		Name:           parsed.Name,
		Skills:         parsed.Skills,
		Experience:     parsed.Experience,
		Education:      parsed.Education,
		Status:         model.StageNewCandidate,
		ResumeFilepath: &stored,
		Source:         source,
	}
	if parsed.Email != "" {
		cand.Email = &parsed.Email
	}
	if parsed.Phone != "" {
		cand.Phone = &parsed.Phone
	}
	if parsed.Summary != "" {
		cand.Summary = &parsed.Summary
	}
	if jd != nil {
		score, matched := match.Score(parsed.Skills, jd.SkillsIdentified)
		cand.MatchScore = &score
		cand.MatchedSkills = matched
		cand.JobDescriptionID = &jd.JobDescriptionID
	}
	return cand
}
