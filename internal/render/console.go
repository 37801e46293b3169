// Package render provides the terminal Renderer used by the binary.
// The core never depends on it; any Renderer implementation will do.
package render

import (
	"fmt"
	"io"
	"sync"

	"quizclient/internal/game"
	"quizclient/internal/screen"
)

type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Notify(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "\n*** %s ***\n", text)
}

func (c *Console) Countdown(s screen.Screen, remaining int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if remaining <= 0 {
		fmt.Fprintln(c.w, "  [time's up]")
		return
	}
	fmt.Fprintf(c.w, "  [%ds left]\n", remaining)
}

func (c *Console) Render(s screen.Screen, sess game.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.w, "\n========== %s ==========\n", s)

	switch s {
	case screen.Landing:
		fmt.Fprintln(c.w, "Welcome! Commands: host | join <pin> <name> | quit")

	case screen.JoinForm:
		fmt.Fprintln(c.w, "Enter: join <pin> <name>")

	case screen.HostLobby:
		fmt.Fprintf(c.w, "Game PIN: %s\n", sess.GamePin)
		c.roster(sess)
		fmt.Fprintln(c.w, "Type 'start' when everyone is in (needs at least 2 players).")

	case screen.PlayerLobby:
		fmt.Fprintf(c.w, "Joined game %s as %s. Waiting for the host to start...\n",
			sess.GamePin, sess.PlayerName)
		c.roster(sess)

	case screen.Question:
		if sess.CurrentQuestion == nil {
			fmt.Fprintln(c.w, "Waiting for the first question...")
			return
		}
		q := sess.CurrentQuestion
		fmt.Fprintf(c.w, "Round %d — Question %d/%d\n", sess.Round, sess.QuestionNumber, sess.TotalQuestions)
		fmt.Fprintln(c.w, q.Text)
		for i, opt := range q.Options {
			fmt.Fprintf(c.w, "  %d) %s\n", i+1, opt)
		}
		if sess.Answered {
			fmt.Fprintln(c.w, "Answer locked in.")
		} else {
			fmt.Fprintln(c.w, "Answer with: answer <number>")
		}

	case screen.AnswerFeedback:
		if sess.LastCorrect {
			fmt.Fprintln(c.w, "Correct!")
		} else {
			fmt.Fprintln(c.w, "Incorrect")
		}

	case screen.Results:
		fmt.Fprintf(c.w, "Correct answer: %s\n", sess.CorrectAnswerText())
		fmt.Fprintln(c.w, "Scores:")
		for _, p := range sess.Players {
			fmt.Fprintf(c.w, "  %s: %d points\n", p.Name, sess.Scores[p.ID])
		}
		if sess.Role == game.RoleHost {
			fmt.Fprintln(c.w, "Type 'next' for the next question.")
		}

	case screen.RoundComplete:
		fmt.Fprintln(c.w, "Round complete!")
		if sess.Role == game.RoleHost {
			fmt.Fprintln(c.w, "Type 'nextround' to continue.")
		}

	case screen.Eliminated:
		fmt.Fprintln(c.w, "You have been eliminated. Thanks for playing!")

	case screen.SpeedQuestion:
		if sess.CurrentQuestion != nil {
			fmt.Fprintln(c.w, sess.CurrentQuestion.Text)
		}
		if sess.AwaitingVerdict {
			fmt.Fprintln(c.w, "Answer received, waiting for the other players...")
		} else {
			fmt.Fprintln(c.w, "Fastest finger! Answer with: speed <text>")
		}

	case screen.SpeedResults:
		fmt.Fprintln(c.w, "Speed results (fastest correct first):")
		c.speedList(sess.SpeedResults)
		c.eliminationNotice(sess)
		if sess.Role == game.RoleHost {
			fmt.Fprintln(c.w, "Type 'continue' to move on.")
		}

	case screen.TiebreakNotice:
		fmt.Fprintf(c.w, "Tiebreaker! %d players tied; a speed question decides who advances...\n",
			sess.TiedPlayerCount)

	case screen.TiebreakQuestion:
		if sess.CurrentQuestion != nil {
			fmt.Fprintln(c.w, sess.CurrentQuestion.Text)
		}
		if sess.AwaitingVerdict {
			fmt.Fprintln(c.w, "Answer received, waiting...")
		} else {
			fmt.Fprintln(c.w, "Answer with: tiebreak <text>")
		}

	case screen.TiebreakResults:
		fmt.Fprintln(c.w, "Tiebreaker results (fastest first):")
		c.speedList(sess.SpeedResults)
		c.eliminationNotice(sess)

	case screen.PlayerOrder:
		fmt.Fprintln(c.w, "Turn order for round two:")
		for i, e := range sess.OrderAnnounce {
			fmt.Fprintf(c.w, "  %s #%d %s (%.2fs)\n", game.Medal(i), e.Position, e.PlayerName, e.ResponseTime)
		}

	case screen.PackSelection:
		fmt.Fprintln(c.w, "Round 2: question packs, turn-based.")
		if tp, ok := sess.CurrentTurnPlayer(); ok {
			if tp.PlayerID == sess.PlayerID {
				fmt.Fprintln(c.w, "YOUR TURN — pick with: pack <id>")
			} else {
				fmt.Fprintf(c.w, "It's %s's turn.\n", tp.PlayerName)
			}
		}
		for i, tp := range sess.TurnOrder {
			marker := "  "
			if i == sess.TurnIndex {
				marker = "->"
			}
			fmt.Fprintf(c.w, "%s #%d %s\n", marker, i+1, tp.PlayerName)
		}
		for _, p := range sess.Packs {
			state := ""
			if p.Selected || sess.SelectedPacks[p.ID] {
				state = " [taken]"
			}
			fmt.Fprintf(c.w, "  %s: %s — %s (%d questions)%s\n",
				p.ID, p.Title, p.Description, p.QuestionCount, state)
		}

	case screen.PackWaiting:
		fmt.Fprintf(c.w, "Pack %q selected by %s.\n", sess.PackTitle, sess.PackSelectedBy)
		if sess.Role == game.RoleHost {
			fmt.Fprintln(c.w, "Type 'startpack' to begin the questions.")
		} else {
			fmt.Fprintln(c.w, "Waiting for the host to start the questions...")
		}

	case screen.PackQuestions:
		c.packQuestion(sess)

	case screen.PackComplete:
		fmt.Fprintf(c.w, "Pack complete! %s\n", sess.PackPlayer)
		fmt.Fprintf(c.w, "Round 2 total: %d\n", sess.Round2Score+sess.PackScore)
		if sess.Role == game.RoleHost {
			fmt.Fprintln(c.w, "Type 'endturn' for the next player.")
		} else {
			fmt.Fprintln(c.w, "Waiting for the host...")
		}

	case screen.Round2Complete:
		fmt.Fprintln(c.w, "All question packs have been completed!")

	case screen.GameOver:
		c.gameOver(sess)

	case screen.LeftGame:
		fmt.Fprintln(c.w, "You left the game. Type 'home' to return to the start.")
	}
}

func (c *Console) roster(sess game.Session) {
	fmt.Fprintf(c.w, "Players (%d):\n", len(sess.Players))
	for _, p := range sess.Players {
		status := "online"
		if !p.Connected {
			status = "offline"
		}
		fmt.Fprintf(c.w, "  %s (%s)\n", p.Name, status)
	}
}

func (c *Console) speedList(results []game.SpeedResult) {
	for i, r := range results {
		mark := "✗"
		if r.Correct {
			mark = "✓"
		}
		fmt.Fprintf(c.w, "  %s %s %s — %q %.2fs\n", game.Medal(i), mark, r.PlayerName, r.Answer, r.ResponseTime)
	}
}

func (c *Console) eliminationNotice(sess game.Session) {
	if sess.EliminatedNotice != nil {
		fmt.Fprintf(c.w, "%s was eliminated!\n", sess.EliminatedNotice.PlayerName)
	}
}

func (c *Console) packQuestion(sess game.Session) {
	if sess.PackCursor >= len(sess.PackQuestions) {
		fmt.Fprintln(c.w, "Pack finished, waiting for the summary...")
		return
	}
	q := sess.PackQuestions[sess.PackCursor]
	fmt.Fprintf(c.w, "%s's turn — question %d\n", sess.PackPlayer, sess.PackCursor+1)
	fmt.Fprintf(c.w, "Round 2 total: %d\n", sess.Round2Score+sess.PackScore)
	fmt.Fprintln(c.w, q.Text)
	if sess.Role == game.RoleHost {
		if q.Answer != "" {
			fmt.Fprintf(c.w, "(answer: %s)\n", q.Answer)
		}
		fmt.Fprintln(c.w, "Verify with: correct | wrong, or 'endearly' to stop the pack.")
	} else if sess.PackPlayer == sess.PlayerName {
		fmt.Fprintln(c.w, "Answer with: submit <text>")
	} else {
		fmt.Fprintln(c.w, "Waiting for host verification...")
	}
}

func (c *Console) gameOver(sess game.Session) {
	switch len(sess.Winners) {
	case 0:
		fmt.Fprintln(c.w, "Game over!")
	case 1:
		fmt.Fprintf(c.w, "Winner: %s!\n", sess.Winners[0])
	default:
		fmt.Fprintln(c.w, "Winners (tie):")
		for _, w := range sess.Winners {
			fmt.Fprintf(c.w, "  %s\n", w)
		}
	}
	if len(sess.FinalScores) > 0 {
		fmt.Fprintln(c.w, "Final scores:")
		for i, fs := range sess.FinalScores {
			fmt.Fprintf(c.w, "  %d. %s — %d points\n", i+1, fs.PlayerName, fs.Score)
		}
	}
	fmt.Fprintln(c.w, "Type 'home' to return to the start.")
}
