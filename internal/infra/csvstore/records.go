package csvstore

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"exam-practice-manager/internal/csvcodec"
	"exam-practice-manager/internal/domain"
)

// Fixed headers for the four data files. The column order here is the wire
// format; FromRow rejects rows with fewer columns than the header names.
const (
	questionHeader = "ID,Text,OptionA,OptionB,OptionC,OptionD,CorrectAnswer,Category,Difficulty,Type,CreatedBy,CreatedDate"
	examHeader     = "ExamID,Name,QuestionIDs,CreatedBy,CreatedDate,TimeLimit,Description"
	resultHeader   = "ResultID,StudentUsername,ExamID,Score,DateTaken,TimeTaken,TotalQuestions,CorrectAnswers,StudentAnswers"
	userHeader     = "Username,Password,Role,Email,IDNumber,CreatedDate"
)

const (
	questionColumns = 12
	examColumns     = 7
	resultColumns   = 9
	userColumns     = 6
)

// listSep joins nested collections inside a single CSV field; mapSep joins a
// map key to its value within one list element.
const (
	listSep = ";"
	mapSep  = ":"
)

func questionToRow(q domain.Question) string {
	return strings.Join([]string{
		strconv.Itoa(q.ID),
		csvcodec.Escape(q.Text),
		csvcodec.Escape(q.OptionA),
		csvcodec.Escape(q.OptionB),
		csvcodec.Escape(q.OptionC),
		csvcodec.Escape(q.OptionD),
		csvcodec.Escape(q.CorrectAnswer),
		csvcodec.Escape(q.Category),
		string(q.Difficulty),
		string(q.Type),
		csvcodec.Escape(q.CreatedBy),
		q.CreatedDate.Format(domain.DateFormat),
	}, ",")
}

func questionFromRow(line string) (domain.Question, bool) {
	fields := csvcodec.ParseLine(line)
	if len(fields) < questionColumns {
		return domain.Question{}, false
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return domain.Question{}, false
	}
	difficulty, err := domain.ParseDifficulty(fields[8])
	if err != nil {
		return domain.Question{}, false
	}
	qType, err := domain.ParseQuestionType(fields[9])
	if err != nil {
		return domain.Question{}, false
	}
	created, err := time.Parse(domain.DateFormat, fields[11])
	if err != nil {
		return domain.Question{}, false
	}

	return domain.Question{
		ID:            id,
		Text:          fields[1],
		OptionA:       fields[2],
		OptionB:       fields[3],
		OptionC:       fields[4],
		OptionD:       fields[5],
		CorrectAnswer: fields[6],
		Category:      fields[7],
		Difficulty:    difficulty,
		Type:          qType,
		CreatedBy:     fields[10],
		CreatedDate:   created,
	}, true
}

func examToRow(e domain.Exam) string {
	ids := make([]string, len(e.QuestionIDs))
	for i, id := range e.QuestionIDs {
		ids[i] = strconv.Itoa(id)
	}
	return strings.Join([]string{
		strconv.Itoa(e.ExamID),
		csvcodec.Escape(e.Name),
		csvcodec.Escape(strings.Join(ids, listSep)),
		csvcodec.Escape(e.CreatedBy),
		e.CreatedDate.Format(domain.DateFormat),
		strconv.Itoa(e.TimeLimit),
		csvcodec.Escape(e.Description),
	}, ",")
}

func examFromRow(line string) (domain.Exam, bool) {
	fields := csvcodec.ParseLine(line)
	if len(fields) < examColumns {
		return domain.Exam{}, false
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return domain.Exam{}, false
	}
	created, err := time.Parse(domain.DateFormat, fields[4])
	if err != nil {
		return domain.Exam{}, false
	}
	limit, err := strconv.Atoi(fields[5])
	if err != nil {
		return domain.Exam{}, false
	}

	var questionIDs []int
	if raw := fields[2]; raw != "" {
		for _, part := range strings.Split(raw, listSep) {
			qid, err := strconv.Atoi(part)
			if err != nil {
				return domain.Exam{}, false
			}
			questionIDs = append(questionIDs, qid)
		}
	}

	return domain.Exam{
		ExamID:      id,
		Name:        fields[1],
		QuestionIDs: questionIDs,
		CreatedBy:   fields[3],
		CreatedDate: created,
		TimeLimit:   limit,
		Description: fields[6],
	}, true
}

// resultToRow serializes an attempt. Unlike the other entities, every text
// field here goes through EscapeList: the StudentAnswers field is itself a
// semicolon-joined list, so semicolons count as reserved across the row.
func resultToRow(r domain.ExamResult) string {
	keys := make([]int, 0, len(r.StudentAnswers))
	for id := range r.StudentAnswers {
		keys = append(keys, id)
	}
	sort.Ints(keys)
	entries := make([]string, len(keys))
	for i, id := range keys {
		entries[i] = strconv.Itoa(id) + mapSep + r.StudentAnswers[id]
	}

	return strings.Join([]string{
		strconv.Itoa(r.ResultID),
		csvcodec.EscapeList(r.StudentUsername),
		strconv.Itoa(r.ExamID),
		strconv.FormatFloat(r.Score, 'f', -1, 64),
		r.DateTaken.Format(domain.DateFormat),
		strconv.Itoa(r.TimeTaken),
		strconv.Itoa(r.TotalQuestions),
		strconv.Itoa(r.CorrectAnswers),
		csvcodec.EscapeList(strings.Join(entries, listSep)),
	}, ",")
}

func resultFromRow(line string) (domain.ExamResult, bool) {
	fields := csvcodec.ParseLine(line)
	if len(fields) < resultColumns {
		return domain.ExamResult{}, false
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return domain.ExamResult{}, false
	}
	examID, err := strconv.Atoi(fields[2])
	if err != nil {
		return domain.ExamResult{}, false
	}
	score, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return domain.ExamResult{}, false
	}
	taken, err := time.Parse(domain.DateFormat, fields[4])
	if err != nil {
		return domain.ExamResult{}, false
	}
	seconds, err := strconv.Atoi(fields[5])
	if err != nil {
		return domain.ExamResult{}, false
	}
	total, err := strconv.Atoi(fields[6])
	if err != nil {
		return domain.ExamResult{}, false
	}
	correct, err := strconv.Atoi(fields[7])
	if err != nil {
		return domain.ExamResult{}, false
	}

	answers := make(map[int]string)
	if raw := fields[8]; raw != "" {
		for _, entry := range strings.Split(raw, listSep) {
			entry = csvcodec.Unescape(entry)
			parts := strings.SplitN(entry, mapSep, 2)
			if len(parts) != 2 {
				return domain.ExamResult{}, false
			}
			qid, err := strconv.Atoi(parts[0])
			if err != nil {
				return domain.ExamResult{}, false
			}
			answers[qid] = parts[1]
		}
	}

	return domain.ExamResult{
		ResultID:        id,
		StudentUsername: fields[1],
		ExamID:          examID,
		Score:           score,
		DateTaken:       taken,
		TimeTaken:       seconds,
		TotalQuestions:  total,
		CorrectAnswers:  correct,
		StudentAnswers:  answers,
	}, true
}

func userToRow(u domain.User) string {
	return strings.Join([]string{
		csvcodec.Escape(u.Username),
		csvcodec.Escape(u.Password),
		string(u.Role),
		csvcodec.Escape(u.Email),
		csvcodec.Escape(u.IDNumber),
		u.CreatedDate.Format(domain.DateFormat),
	}, ",")
}

func userFromRow(line string) (domain.User, bool) {
	fields := csvcodec.ParseLine(line)
	if len(fields) < userColumns {
		return domain.User{}, false
	}

	role, err := domain.ParseRole(fields[2])
	if err != nil {
		return domain.User{}, false
	}
	created, err := time.Parse(domain.DateFormat, fields[5])
	if err != nil {
		return domain.User{}, false
	}

	return domain.User{
		Username:    fields[0],
		Password:    fields[1],
		Role:        role,
		Email:       fields[3],
		IDNumber:    fields[4],
		CreatedDate: created,
	}, true
}
