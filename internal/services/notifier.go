package services

import (
	"context"
	"fmt"
	"strings"

	"bytevanta/internal/logger"
	helpers "bytevanta/internal/utils/helpers"

	"go.uber.org/zap"
)

type EmailJob struct {
	To      []string
	Subject string
	Body    string
	IsHTML  bool
}

var EmailQueue = make(chan EmailJob, 100) // глобальная очередь на 100 писем

func StartEmailWorker(emailService *EmailService) {
	for job := range EmailQueue {
		if err := emailService.Send(job.To, job.Subject, job.Body, job.IsHTML); err != nil {
			logger.Log.Error("Ошибка отправки письма из очереди",
				zap.Strings("to", job.To),
				zap.String("subject", job.Subject),
				zap.Error(err),
			)
		}
	}
}

// Notifier рассылает письма подписчикам рассылки.
type Notifier struct {
	userRepo UserRepo
	baseURL  string
}

func NewNotifier(userRepo UserRepo, baseURL string) *Notifier {
	return &Notifier{
		userRepo: userRepo,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

func chunkStrings(all []string, n int) [][]string {
	if n <= 0 {
		n = 50
	}
	var out [][]string
	for i := 0; i < len(all); i += n {
		j := i + n
		if j > len(all) {
			j = len(all)
		}
		out = append(out, all[i:j])
	}
	return out
}

// NotifyArticlePublished ставит письма подписчикам в очередь. Ошибки не
// прерывают публикацию статьи.
func (n *Notifier) NotifyArticlePublished(ctx context.Context, articleID int64, title string) {
	// важное: не завязываемся на HTTP-контекст
	ctx = context.WithoutCancel(ctx)

	emails, err := n.userRepo.GetSubscribedEmails(ctx)
	if err != nil {
		logger.Log.Error("Не удалось получить список подписчиков", zap.Error(err))
		return
	}
	if len(emails) == 0 {
		return
	}

	link := fmt.Sprintf("%s/article/%d", n.baseURL, articleID)
	html := helpers.BuildArticlePublishedHTML(title, link)

	for _, batch := range chunkStrings(emails, 50) {
		EmailQueue <- EmailJob{
			To:      batch,
			Subject: "Новая статья на Bytevanta",
			Body:    html,
			IsHTML:  true,
		}
	}
}
