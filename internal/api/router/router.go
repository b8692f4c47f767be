package router

import (
	"context"
	"errors"
	"mime"
	"path/filepath"

	"hiremind-go/internal/api/handler"
	"hiremind-go/internal/processor"
	"hiremind-go/internal/storage"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, candidateHandler *handler.CandidateHandler) {
	h.POST("/upload", func(c context.Context, ctx *app.RequestContext) {
		// 获取上传的简历文件
		fileHeader, err := ctx.FormFile("resume")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "缺少简历文件"})
			return
		}
		// 岗位描述允许为空
		jobDescription := ctx.PostForm("job_description")

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		resp, err := candidateHandler.HandleUpload(c, file, fileHeader.Filename, jobDescription)
		if err != nil {
			if errors.Is(err, processor.ErrEmptyUpload) {
				ctx.JSON(consts.StatusBadRequest, utils.H{"error": err.Error()})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	h.GET("/dashboard", func(c context.Context, ctx *app.RequestContext) {
		views, err := candidateHandler.HandleDashboard(c)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"candidates": views})
	})

	h.GET("/candidate/:uid", func(c context.Context, ctx *app.RequestContext) {
		uid := ctx.Param("uid")
		view, err := candidateHandler.HandleGetCandidate(c, uid)
		if err != nil {
			if errors.Is(err, storage.ErrCandidateNotFound) {
				ctx.JSON(consts.StatusNotFound, utils.H{"error": "候选人不存在"})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, view)
	})

	h.POST("/delete/:uid", func(c context.Context, ctx *app.RequestContext) {
		if err := candidateHandler.HandleDelete(c, ctx.Param("uid")); err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"status": "deleted"})
	})

	h.POST("/reprocess", func(c context.Context, ctx *app.RequestContext) {
		report, err := candidateHandler.HandleReprocess(c)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, report)
	})

	h.GET("/export", func(c context.Context, ctx *app.RequestContext) {
		data, err := candidateHandler.HandleExportCSV(c)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.Header("Content-Disposition", `attachment; filename="candidates.csv"`)
		ctx.Data(consts.StatusOK, "text/csv; charset=utf-8", data)
	})

	h.GET("/uploads/:filename", func(c context.Context, ctx *app.RequestContext) {
		filename := ctx.Param("filename")
		data, err := candidateHandler.HandleGetResumeFile(c, filename)
		if err != nil {
			if errors.Is(err, storage.ErrFileMissing) {
				ctx.JSON(consts.StatusNotFound, utils.H{"error": "文件不存在"})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		contentType := mime.TypeByExtension(filepath.Ext(filename))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		ctx.Data(consts.StatusOK, contentType, data)
	})

	// 健康检查
	h.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}
