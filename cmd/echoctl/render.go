package main

import (
	"fmt"
	"io"
	"local-echo/domain"
	"local-echo/projection"
	"local-echo/repositories"
	"strconv"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"
)

var stateStyles = map[domain.SendState]color.Style{
	domain.SendStateUnsent:      color.New(color.FgWhite),
	domain.SendStateSending:     color.New(color.FgYellow),
	domain.SendStateSent:        color.New(color.FgCyan),
	domain.SendStateSynced:      color.New(color.FgGreen),
	domain.SendStateUndelivered: color.New(color.FgRed),
	domain.SendStateHasFailed:   color.New(color.FgRed, color.OpBold),
}

func stateLabel(state domain.SendState) string {
	style, ok := stateStyles[state]
	if !ok {
		return state.String()
	}
	return style.Render(state.String())
}

func newTable(out io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

// preview is what a timeline would show for the event.
func preview(evt domain.Event) string {
	content, ok := domain.DecodeContent(evt)
	if !ok {
		return evt.ClearType()
	}
	switch c := content.(type) {
	case domain.MessageContent:
		return fmt.Sprintf("[%s] %s", c.MsgType, c.Body)
	case domain.ReactionContent:
		return fmt.Sprintf("%s on %s", c.Key, c.RelatesTo)
	case domain.RedactionContent:
		return "redacts " + c.Redacts
	default:
		return evt.ClearType()
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func renderEchoes(out io.Writer, echoes []domain.LocalEcho) {
	table := newTable(out, "Index", "Event ID", "State", "Sender", "Display Name", "Content")
	for _, echo := range echoes {
		name := deref(echo.SenderDisplayName)
		if name != "" && !echo.UniqueDisplayNameFlag {
			name += " (ambiguous)"
		}
		table.Append([]string{
			strconv.FormatUint(echo.DisplayIndex, 10),
			echo.EventID(),
			stateLabel(echo.SendState),
			echo.Event.SenderID,
			name,
			preview(echo.Event),
		})
	}
	table.Render()
}

func renderEvents(out io.Writer, events []domain.Event) {
	table := newTable(out, "Event ID", "Type", "Sender", "Content")
	for _, evt := range events {
		table.Append([]string{evt.EventID, evt.ClearType(), evt.SenderID, preview(evt)})
	}
	table.Render()
}

func renderMembers(out io.Writer, members []domain.RoomMember) {
	table := newTable(out, "User ID", "Membership", "Display Name", "Avatar")
	for _, member := range members {
		table.Append([]string{member.UserID, string(member.Membership), deref(member.DisplayName), deref(member.AvatarURL)})
	}
	table.Render()
}

func renderSummary(out io.Writer, summary projection.RoomSummary) {
	latest := ""
	if summary.LatestEcho != nil {
		latest = preview(summary.LatestEcho.Event)
	}
	table := newTable(out, "Room", "Queued", "Pending", "Sent", "Failed", "Latest")
	table.Append([]string{
		summary.RoomID.String(),
		strconv.Itoa(summary.QueueLength),
		strconv.Itoa(summary.PendingCount),
		strconv.Itoa(summary.SentCount),
		strconv.Itoa(summary.FailedCount),
		latest,
	})
	table.Render()
}

func renderRecords(out io.Writer, keys []string, rows []database.InspectRow) {
	table := newTable(out, "Key", "Type", "Detail")
	for i, row := range rows {
		table.Append([]string{repositories.PrintableKey(keys[i]), row.Type, row.Detail})
	}
	table.Render()
}

// EchoMapper decodes local echo store records for the badger inspector.
func EchoMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)
	kind, detail := repositories.DescribeRecord(key, val)
	row.Type = string(kind)
	row.Detail = detail
	return row
}
