package handler

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"github.com/brianmahove/recruiting-ai/internal/ingest"
	"github.com/brianmahove/recruiting-ai/pkg"
	"github.com/brianmahove/recruiting-ai/pkg/model"
	"github.com/brianmahove/recruiting-ai/pkg/response"
	"github.com/gin-gonic/gin"
)

// UploadVideoInterview stores a recorded interview and runs the behavioural
// analysis pass over it.
func (h *Handler) UploadVideoInterview(c *gin.Context) {
	file, err := c.FormFile("video")
	if err != nil {
		response.ValidationError(c, "no video file part in the request")
		return
	}
	if !ingest.AllowedVideo(file.Filename) {
		response.UnsupportedFormat(c, "only MP4, WebM and Ogg videos are accepted")
		return
	}
	if file.Size > h.MaxVideo {
		response.ValidationError(c, "video exceeds the maximum upload size")
		return
	}

	candidateID, err := strconv.ParseInt(c.PostForm("candidate_id"), 10, 64)
	if err != nil || candidateID < 1 {
		response.ValidationError(c, "candidate_id is required")
		return
	}
	jdID, err := strconv.ParseInt(c.PostForm("job_description_id"), 10, 64)
	if err != nil || jdID < 1 {
		response.ValidationError(c, "job_description_id is required")
		return
	}
	interviewType := c.PostForm("interview_type")
	if interviewType == "" {
		interviewType = "General"
	}
	var duration *int
	if raw := c.PostForm("duration_seconds"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d < 0 {
			response.ValidationError(c, "invalid duration_seconds")
			return
		}
		duration = &d
	}

	ctx := c.Request.Context()
	cand, err := h.Repo.GetCandidateByID(ctx, candidateID)
	if err != nil {
		h.repoError(c, err)
		return
	}
	if _, err := h.Repo.GetJobDescriptionByID(ctx, jdID); err != nil {
		h.repoError(c, err)
		return
	}

	stored, _, err := h.VideoStore.Save(file)
	if err != nil {
		h.Logger.Sugar().Errorw("save video", "filename", file.Filename, "err", err)
		response.InternalError(c, "")
		return
	}

	video := &model.VideoInterview{
		CandidateID:      candidateID,
		JobDescriptionID: jdID,
		InterviewType:    interviewType,
		InterviewDate:    time.Now(),
		DurationSeconds:  duration,
		VideoURL:         stored,
	}
	created, err := h.Repo.CreateVideoInterview(ctx, video)
	if err != nil {
		_ = h.VideoStore.Delete(stored)
		h.repoError(c, err)
		return
	}

	analysis := analyzeVideo(stored, cand)
	if err := h.Repo.UpdateVideoAnalysis(ctx, created.VideoInterviewID, analysis, strings.Join(analysis.Keywords, ", ")); err != nil {
		h.repoError(c, err)
		return
	}
	saved, err := h.Repo.GetVideoInterviewByID(ctx, created.VideoInterviewID)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.Created(c, saved)
}

func (h *Handler) GetVideoInterview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	video, err := h.Repo.GetVideoInterviewByID(c.Request.Context(), id)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, video)
}

func (h *Handler) ListCandidateVideoInterviews(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, err := h.Repo.GetCandidateByID(c.Request.Context(), id); err != nil {
		h.repoError(c, err)
		return
	}
	videos, err := h.Repo.ListVideoInterviewsByCandidate(c.Request.Context(), id)
	if err != nil {
		h.repoError(c, err)
		return
	}
	response.OK(c, videos)
}

// analyzeVideo derives a behavioural read from the recording metadata. The
// simulated model hashes the stored filename so repeated analyses of the same
// recording agree with each other.
func analyzeVideo(stored string, cand model.Candidate) model.VideoAnalysis {
	hash := fnv.New32a()
	hash.Write([]byte(stored))
	// sentiment in [0.30, 0.90)
	sentiment := pkg.Round2(0.30 + float64(hash.Sum32()%60)/100.0)

	keywords := cand.Skills
	if len(keywords) > 5 {
		keywords = keywords[:5]
	}

	tone := "neutral and composed"
	switch {
	case sentiment >= 0.70:
		tone = "confident and engaged"
	case sentiment < 0.45:
		tone = "reserved and hesitant"
	}
	summary := fmt.Sprintf("Candidate came across as %s throughout the recording.", tone)
	raw := fmt.Sprintf(`{"sentiment_score":%.2f,"tone":%q}`, sentiment, tone)

	return model.VideoAnalysis{
		SentimentScore:  sentiment,
		BehaviorSummary: summary,
		Keywords:        keywords,
		RawFeedback:     raw,
	}
}
