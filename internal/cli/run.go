package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"exam-practice-manager/internal/app"
	"exam-practice-manager/internal/config"
	"exam-practice-manager/internal/domain"
)

// NewRunCmd starts the interactive console: login, role-gated menus, exam
// taking with a live countdown.
func NewRunCmd(configPath, dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the interactive console",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath, *dataDir)
			if err != nil {
				return err
			}
			s, err := openStores(cfg)
			if err != nil {
				return err
			}
			c := &console{
				in:     bufio.NewScanner(os.Stdin),
				stores: s,
				auth:   app.NewAuthService(s.users),
				stats:  app.NewStatsService(s.questions, s.exams, s.results, s.users),
				tick:   config.TickDuration(cfg.Exam.Tick, time.Second),
			}
			return c.run()
		},
	}
}

type console struct {
	in     *bufio.Scanner
	stores *stores
	auth   *app.AuthService
	stats  *app.StatsService
	tick   time.Duration
}

func (c *console) run() error {
	for {
		color.Cyan("\n=== Exam Practice Manager ===")
		fmt.Println("1. Login")
		fmt.Println("2. Register")
		fmt.Println("3. Exit")

		switch c.prompt("Choice") {
		case "1":
			c.login()
		case "2":
			c.register()
		case "3":
			return nil
		default:
			color.Red("Invalid choice.")
		}
	}
}

func (c *console) login() {
	username := c.prompt("Username")
	password := c.prompt("Password")
	session, err := c.auth.Login(username, password)
	if err != nil {
		color.Red("%v", err)
		return
	}
	color.Green("Welcome, %s (%s)", session.User.Username, session.User.Role)
	if session.IsLecturer() {
		c.lecturerMenu(session)
	} else {
		c.studentMenu(session)
	}
}

func (c *console) register() {
	user := domain.User{
		Username: c.prompt("Username"),
		Password: c.prompt("Password"),
		Email:    c.prompt("Email"),
		IDNumber: c.prompt("ID number"),
	}
	switch strings.ToLower(c.prompt("Role (student/lecturer)")) {
	case "lecturer":
		user.Role = domain.RoleLecturer
	default:
		user.Role = domain.RoleStudent
	}
	if err := c.auth.Register(user); err != nil {
		color.Red("%v", err)
		return
	}
	color.Green("Account created. You can log in now.")
}

func (c *console) lecturerMenu(session *app.UserSession) {
	for {
		color.Cyan("\n--- Lecturer: %s ---", session.User.Username)
		fmt.Println("1. Dashboard")
		fmt.Println("2. List questions")
		fmt.Println("3. Add question")
		fmt.Println("4. Delete question")
		fmt.Println("5. Create exam")
		fmt.Println("6. All results")
		fmt.Println("7. Logout")

		switch c.prompt("Choice") {
		case "1":
			c.report(renderStats(c.stats))
		case "2":
			c.listQuestions()
		case "3":
			c.addQuestion(session)
		case "4":
			c.deleteQuestion()
		case "5":
			c.createExam(session)
		case "6":
			c.allResults()
		case "7":
			return
		default:
			color.Red("Invalid choice.")
		}
	}
}

func (c *console) studentMenu(session *app.UserSession) {
	for {
		color.Cyan("\n--- Student: %s ---", session.User.Username)
		fmt.Println("1. List exams")
		fmt.Println("2. Take exam")
		fmt.Println("3. My results")
		fmt.Println("4. Logout")

		switch c.prompt("Choice") {
		case "1":
			c.listExams()
		case "2":
			c.takeExam(session)
		case "3":
			c.myResults(session)
		case "4":
			return
		default:
			color.Red("Invalid choice.")
		}
	}
}

func (c *console) listQuestions() {
	questions, err := c.stores.questions.GetAll()
	if err != nil {
		color.Red("%v", err)
		return
	}
	for _, q := range questions {
		fmt.Printf("%3d. [%s/%s] %s\n", q.ID, q.Category, q.Difficulty, q.Text)
	}
}

func (c *console) addQuestion(session *app.UserSession) {
	q := domain.Question{
		Text:        c.prompt("Question text"),
		Category:    c.prompt("Category"),
		CreatedBy:   session.User.Username,
		CreatedDate: time.Now(),
	}

	difficulty, err := domain.ParseDifficulty(c.prompt("Difficulty (Easy/Medium/Hard)"))
	if err != nil {
		color.Red("%v", err)
		return
	}
	q.Difficulty = difficulty

	qType, err := domain.ParseQuestionType(c.prompt("Type (MultipleChoice/TrueFalse/FillInTheBlank)"))
	if err != nil {
		color.Red("%v", err)
		return
	}
	q.Type = qType

	switch qType {
	case domain.MultipleChoice:
		q.OptionA = c.prompt("Option A")
		q.OptionB = c.prompt("Option B")
		q.OptionC = c.prompt("Option C")
		q.OptionD = c.prompt("Option D")
		q.CorrectAnswer = strings.ToUpper(c.prompt("Correct option (A-D)"))
	case domain.TrueFalse:
		q.OptionA, q.OptionB = "True", "False"
		q.CorrectAnswer = strings.ToUpper(c.prompt("Correct answer (TRUE/FALSE)"))
	case domain.FillInTheBlank:
		q.CorrectAnswer = c.prompt("Correct answer")
	}

	if err := c.stores.questions.Add(&q); err != nil {
		color.Red("%v", err)
		return
	}
	color.Green("Question %d added.", q.ID)
}

func (c *console) deleteQuestion() {
	id, err := strconv.Atoi(c.prompt("Question ID"))
	if err != nil {
		color.Red("Invalid ID.")
		return
	}
	removed, err := c.stores.questions.Delete(id)
	if err != nil {
		color.Red("%v", err)
		return
	}
	if !removed {
		color.Yellow("No question with ID %d.", id)
		return
	}
	color.Green("Question %d deleted.", id)
}

func (c *console) createExam(session *app.UserSession) {
	e := domain.Exam{
		Name:        c.prompt("Exam name"),
		Description: c.prompt("Description"),
		CreatedBy:   session.User.Username,
		CreatedDate: time.Now(),
	}

	limit, err := strconv.Atoi(c.prompt("Time limit (minutes)"))
	if err != nil || limit <= 0 {
		color.Red("Time limit must be a positive number.")
		return
	}
	e.TimeLimit = limit

	ids, err := parseIDList(c.prompt("Question IDs (comma-separated, in order)"))
	if err != nil {
		color.Red("%v", err)
		return
	}
	e.QuestionIDs = ids

	if err := c.stores.exams.Add(&e); err != nil {
		color.Red("%v", err)
		return
	}
	color.Green("Exam %d created.", e.ExamID)
}

func (c *console) listExams() {
	exams, err := c.stores.exams.GetAll()
	if err != nil {
		color.Red("%v", err)
		return
	}
	for _, e := range exams {
		fmt.Printf("%3d. %s (%d questions, %d min): %s\n",
			e.ExamID, e.Name, len(e.QuestionIDs), e.TimeLimit, e.Description)
	}
}

func (c *console) allResults() {
	results, err := c.stores.results.GetAll()
	if err != nil {
		color.Red("%v", err)
		return
	}
	renderResults(results)
}

func (c *console) myResults(session *app.UserSession) {
	results, err := c.stats.StudentHistory(session.User.Username)
	if err != nil {
		color.Red("%v", err)
		return
	}
	renderResults(results)
}

func (c *console) takeExam(session *app.UserSession) {
	examID, err := strconv.Atoi(c.prompt("Exam ID"))
	if err != nil {
		color.Red("Invalid ID.")
		return
	}

	exam, err := app.StartSession(session.User.Username, examID, c.stores.exams, c.stores.questions, c.stores.results)
	if err != nil {
		color.Red("Could not start exam: %v", err)
		return
	}

	color.Cyan("\nStarting %q: %d questions, %d minutes.", exam.Exam().Name, totalOf(exam), exam.Exam().TimeLimit)
	fmt.Println("Enter an answer, or: n(ext), p(revious), s(ubmit), q(uit)")

	lastTick := time.Now()
	for exam.State() == app.StateInProgress {
		c.showQuestion(exam)
		input := c.prompt("Answer")

		// The countdown is cooperative: credit the seconds that passed while
		// waiting for input before acting on it.
		var expired bool
		lastTick, expired, err = c.advanceCountdown(exam, lastTick)
		if expired {
			color.Yellow("\nTime is up, submitting what you have.")
			if err != nil {
				color.Red("Saving the result failed: %v", err)
			}
			break
		}

		switch strings.ToLower(input) {
		case "n":
			if _, err := exam.Next(exam.CurrentAnswer()); err != nil {
				color.Red("%v", err)
			}
		case "p":
			if _, err := exam.Previous(exam.CurrentAnswer()); err != nil {
				color.Red("%v", err)
			}
		case "s":
			if _, err := exam.Submit(exam.CurrentAnswer()); err != nil {
				color.Red("Saving the result failed: %v", err)
			}
		case "q":
			if strings.EqualFold(c.prompt("Abandon this attempt? Nothing will be saved (y/N)"), "y") {
				if err := exam.Abandon(); err != nil {
					color.Red("%v", err)
				}
			}
		default:
			if err := exam.Capture(input); err != nil {
				color.Red("%v", err)
			}
		}
	}

	if res, ok := exam.Result(); ok {
		color.Green("\nScore: %.1f%% (%d/%d correct, %ds)",
			res.Score, res.CorrectAnswers, res.TotalQuestions, res.TimeTaken)
	} else {
		color.Yellow("Attempt abandoned.")
	}
}

// advanceCountdown ticks the session once per elapsed tick interval and
// reports whether the countdown expired (which force-submits inside Tick).
func (c *console) advanceCountdown(exam *app.ExamSession, last time.Time) (time.Time, bool, error) {
	elapsed := int(time.Since(last) / c.tick)
	for i := 0; i < elapsed; i++ {
		last = last.Add(c.tick)
		if _, expired, err := exam.Tick(); expired {
			return last, true, err
		}
	}
	return last, false, nil
}

func (c *console) showQuestion(exam *app.ExamSession) {
	pos, total := exam.Position()
	q := exam.CurrentQuestion()

	fmt.Println()
	color.Cyan("[%02d:%02d remaining] Question %d of %d", exam.Remaining()/60, exam.Remaining()%60, pos, total)
	fmt.Println(q.Text)
	if q.Type != domain.FillInTheBlank {
		for i, option := range q.Options() {
			if option == "" {
				continue
			}
			fmt.Printf("  %c. %s\n", 'A'+i, option)
		}
	}
	if answer := exam.CurrentAnswer(); answer != "" {
		fmt.Printf("Current answer: %s\n", answer)
	}
}

func (c *console) report(err error) {
	if err != nil {
		color.Red("%v", err)
	}
}

func (c *console) prompt(label string) string {
	fmt.Printf("%s: ", label)
	if !c.in.Scan() {
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

func totalOf(exam *app.ExamSession) int {
	_, total := exam.Position()
	return total
}
