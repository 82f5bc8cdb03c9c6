package telegram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot is the long-polling Telegram client. Every inbound update turns
// into exactly one assistant API call.
type Bot struct {
	api        *tgbotapi.BotAPI
	client     *APIClient
	fileClient *http.Client
	logger     *slog.Logger
}

func NewBot(token string, client *APIClient, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{api: api, client: client, fileClient: newFileClient(), logger: logger}, nil
}

// newFileClient downloads attachments from the Telegram file API. A
// stalled download must not wedge the update loop, so the client always
// carries a timeout.
func newFileClient() *http.Client {
	return &http.Client{Timeout: 120 * time.Second}
}

func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("bot started", slog.String("username", b.api.Self.UserName))

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID

	var reply string
	switch {
	case msg.IsCommand():
		reply = b.handleCommand(ctx, userID, msg)
	case msg.Document != nil:
		reply = b.handleDocument(ctx, userID, msg.Document.FileID, msg.Document.FileName)
	case len(msg.Photo) > 0:
		photo := msg.Photo[len(msg.Photo)-1]
		reply = b.handleDocument(ctx, userID, photo.FileID, fmt.Sprintf("photo_%s.jpg", photo.FileUniqueID))
	case msg.Voice != nil:
		reply = b.handleVoice(ctx, userID, msg.Voice.FileID, "voice.ogg")
	case msg.Audio != nil:
		reply = b.handleVoice(ctx, userID, msg.Audio.FileID, audioFilename(msg.Audio))
	case strings.TrimSpace(msg.Text) != "":
		reply = b.askAssistant(ctx, userID, msg.Text)
	default:
		return
	}

	b.send(msg.Chat.ID, reply)
}

func (b *Bot) handleCommand(ctx context.Context, userID int64, msg *tgbotapi.Message) string {
	args := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "start":
		return "Hi! Send me a document, photo, voice note or plain text.\n" +
			"Commands: /add <task>, /get <note id>, /search <query>, /tasks, /done <task id>, /clear"
	case "add":
		if args == "" {
			return "Usage: /add <task title>"
		}
		task, err := b.client.CreateTask(ctx, userID, args)
		if err != nil {
			return b.apiErrorReply("create task", err)
		}
		return fmt.Sprintf("Task #%d added: %s", task.ID, task.Title)
	case "get":
		id, err := strconv.ParseInt(args, 10, 64)
		if err != nil {
			return "Usage: /get <note id>"
		}
		note, err := b.client.GetNote(ctx, id)
		if err != nil {
			return b.apiErrorReply("get note", err)
		}
		return formatNote(note)
	case "search":
		if args == "" {
			return "Usage: /search <query>"
		}
		results, err := b.client.SearchNotes(ctx, userID, args)
		if err != nil {
			return b.apiErrorReply("search notes", err)
		}
		return formatSearchResults(results)
	case "tasks":
		tasks, err := b.client.ListTasks(ctx, userID, "")
		if err != nil {
			return b.apiErrorReply("list tasks", err)
		}
		return formatTasks(tasks)
	case "done":
		id, err := strconv.ParseInt(args, 10, 64)
		if err != nil {
			return "Usage: /done <task id>"
		}
		task, err := b.client.CompleteTask(ctx, id)
		if err != nil {
			return b.apiErrorReply("complete task", err)
		}
		return fmt.Sprintf("Task #%d done: %s", task.ID, task.Title)
	case "clear":
		message, err := b.client.ClearNotes(ctx, userID)
		if err != nil {
			return b.apiErrorReply("clear notes", err)
		}
		return message
	default:
		return "Unknown command. Try /start."
	}
}

func (b *Bot) handleDocument(ctx context.Context, userID int64, fileID, filename string) string {
	body, err := b.downloadTelegramFile(fileID)
	if err != nil {
		return b.apiErrorReply("download file", err)
	}
	defer body.Close()

	res, err := b.client.UploadFile(ctx, userID, filename, body)
	if err != nil {
		return b.apiErrorReply("upload file", err)
	}
	reply := fmt.Sprintf("Saved as note #%d.", res.NoteID)
	if strings.TrimSpace(res.TextPreview) != "" {
		reply += "\n\n" + res.TextPreview
	}
	return reply
}

func (b *Bot) handleVoice(ctx context.Context, userID int64, fileID, filename string) string {
	body, err := b.downloadTelegramFile(fileID)
	if err != nil {
		return b.apiErrorReply("download voice", err)
	}
	defer body.Close()

	text, err := b.client.Transcribe(ctx, filename, body)
	if err != nil {
		return b.apiErrorReply("transcribe voice", err)
	}
	if strings.TrimSpace(text) == "" {
		return "I could not hear anything in that recording."
	}
	return b.askAssistant(ctx, userID, text)
}

func (b *Bot) askAssistant(ctx context.Context, userID int64, question string) string {
	answer, err := b.client.Chat(ctx, userID, question)
	if err != nil {
		return b.apiErrorReply("chat", err)
	}
	return answer
}

func (b *Bot) downloadTelegramFile(fileID string) (io.ReadCloser, error) {
	fileURL, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve telegram file url: %w", err)
	}
	res, err := b.fileClient.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("fetch telegram file: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, fmt.Errorf("fetch telegram file: status %d", res.StatusCode)
	}
	return res.Body, nil
}

func (b *Bot) apiErrorReply(operation string, err error) string {
	b.logger.Error("bot operation failed",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
	return "Something went wrong, please try again."
}

func (b *Bot) send(chatID int64, text string) {
	if text == "" {
		return
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("send message failed", slog.String("error", err.Error()))
	}
}

func audioFilename(audio *tgbotapi.Audio) string {
	if audio.FileName != "" {
		return audio.FileName
	}
	return "audio.mp3"
}
