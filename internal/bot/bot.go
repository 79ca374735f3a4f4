package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"todo-bot/internal/logger"
	"todo-bot/internal/model"
	"todo-bot/internal/repository"
	"todo-bot/internal/service"
)

const (
	replyWelcome       = "👋 Welcome! Please enter your full name:"
	replyWelcomeBack   = "👋 Welcome back! Use /addtask or /showtask."
	replyRegistered    = "✅ Registered as %s. Use /addtask."
	replyBeginTasks    = "📌 Send task(s) one by one. Use /donetask to stop."
	replyTaskAdded     = "✅ Task added."
	replyDoneAdding    = "🛑 Done adding tasks."
	replyNoTasks       = "📭 No tasks."
	replyTaskList      = "📝 Your tasks:\n%s"
	replyCompleted     = "✅ Task marked complete."
	replyCompleteUsage = "⚠️ Error. Usage: /complete [task_number]"

	noUsername = "no_username"
)

// Bot routes inbound updates to the registration and task-intake flows and
// to the fixed command set.
type Bot struct {
	sender        Sender
	userRepo      *repository.UserRepository
	taskSvc       *service.TaskService
	conversations *conversationStore
}

func New(sender Sender, userRepo *repository.UserRepository, taskSvc *service.TaskService) *Bot {
	return &Bot{
		sender:        sender,
		userRepo:      userRepo,
		taskSvc:       taskSvc,
		conversations: newConversationStore(),
	}
}

// HandleUpdate processes one inbound update to completion. Updates for the
// same user are serialized through a per-user lock.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return nil
	}

	lock := b.conversations.userLock(msg.From.ID)
	lock.Lock()
	defer lock.Unlock()

	if msg.IsCommand() {
		logger.Info("command received",
			zap.Int64("user_id", msg.From.ID),
			zap.String("command", msg.Command()),
		)
		return b.handleCommand(ctx, msg)
	}
	return b.handleText(ctx, msg)
}

// Commands always dispatch, even while a flow is active. Only /donetask ends
// the task-intake flow; the entry commands simply (re)enter theirs.
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start", "register":
		return b.handleStart(ctx, msg)
	case "addtask":
		return b.handleAddTask(msg)
	case "donetask":
		return b.handleDoneTask(msg)
	case "showtask":
		return b.handleShowTask(ctx, msg)
	case "complete":
		return b.handleComplete(ctx, msg)
	default:
		// Outside the fixed command surface; no unknown-command reply.
		return nil
	}
}

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) error {
	switch b.conversations.get(msg.From.ID) {
	case flowRegister:
		return b.saveName(ctx, msg)
	case flowAddingTask:
		return b.storeTask(ctx, msg)
	default:
		logger.Debug("text without active flow ignored", zap.Int64("user_id", msg.From.ID))
		return nil
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.userRepo.FindByIdentity(ctx, identityOf(msg.From))
	if err != nil {
		return err
	}
	if user != nil {
		return b.sender.SendText(msg.Chat.ID, replyWelcomeBack)
	}

	b.conversations.set(msg.From.ID, flowRegister)
	return b.sender.SendText(msg.Chat.ID, replyWelcome)
}

// saveName finishes the registration flow: the message text is taken
// verbatim as the display name.
func (b *Bot) saveName(ctx context.Context, msg *tgbotapi.Message) error {
	username := msg.From.UserName
	if username == "" {
		username = noUsername
	}

	user, err := b.userRepo.Register(ctx, identityOf(msg.From), msg.Text, username)
	if err != nil {
		return err
	}

	b.conversations.clear(msg.From.ID)
	logger.Info("user registered", zap.String("identity", user.Identity))
	return b.sender.SendText(msg.Chat.ID, fmt.Sprintf(replyRegistered, user.Name))
}

func (b *Bot) handleAddTask(msg *tgbotapi.Message) error {
	b.conversations.set(msg.From.ID, flowAddingTask)
	return b.sender.SendText(msg.Chat.ID, replyBeginTasks)
}

// storeTask saves one task and stays in the flow so several tasks can be
// added in sequence.
func (b *Bot) storeTask(ctx context.Context, msg *tgbotapi.Message) error {
	if _, err := b.taskSvc.Add(ctx, identityOf(msg.From), msg.Text); err != nil {
		return err
	}
	return b.sender.SendText(msg.Chat.ID, replyTaskAdded)
}

func (b *Bot) handleDoneTask(msg *tgbotapi.Message) error {
	if b.conversations.get(msg.From.ID) != flowAddingTask {
		return nil
	}
	b.conversations.clear(msg.From.ID)
	return b.sender.SendText(msg.Chat.ID, replyDoneAdding)
}

func (b *Bot) handleShowTask(ctx context.Context, msg *tgbotapi.Message) error {
	tasks, err := b.taskSvc.List(ctx, identityOf(msg.From))
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		return b.sender.SendText(msg.Chat.ID, replyNoTasks)
	}
	return b.sender.SendText(msg.Chat.ID, fmt.Sprintf(replyTaskList, formatTaskList(tasks)))
}

func (b *Bot) handleComplete(ctx context.Context, msg *tgbotapi.Message) error {
	task, err := b.taskSvc.CompleteByNumber(ctx, identityOf(msg.From), msg.CommandArguments())
	switch {
	case err == nil:
		logger.Info("task completed",
			zap.Uint("task_id", task.ID),
			zap.String("identity", task.UserIdentity),
		)
		return b.sender.SendText(msg.Chat.ID, replyCompleted)
	case errors.Is(err, service.ErrInvalidTaskNumber),
		errors.Is(err, service.ErrNoTasks),
		errors.Is(err, service.ErrTaskNotFound):
		logger.Warn("complete rejected",
			zap.Int64("user_id", msg.From.ID),
			zap.String("args", msg.CommandArguments()),
			zap.String("cause", err.Error()),
		)
		return b.sender.SendText(msg.Chat.ID, replyCompleteUsage)
	default:
		return err
	}
}

func formatTaskList(tasks []model.Task) string {
	lines := make([]string, 0, len(tasks))
	for i, task := range tasks {
		lines = append(lines, fmt.Sprintf("%d. %s [%s]", i+1, task.Text, task.Status))
	}
	return strings.Join(lines, "\n")
}

func identityOf(from *tgbotapi.User) string {
	return strconv.FormatInt(from.ID, 10)
}
