package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"teacher-eval/backend/internal/dto"
)

func renderStandards(w io.Writer, standards []dto.StandardResponse) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Title", "Weight", "Icon", "Evidence"})
	table.SetAutoWrapText(false)

	var total float64
	for _, s := range standards {
		total += s.WeightValue
		table.Append([]string{
			strconv.Itoa(s.SortOrder),
			s.Title,
			s.Weight,
			s.Icon,
			strconv.Itoa(len(s.SuggestedEvidence)),
		})
	}
	table.SetFooter([]string{"", "Total", strconv.FormatFloat(total, 'f', -1, 64) + "%", "", ""})
	table.Render()
}

func renderCycle(w io.Writer, cycle *dto.CycleResponse) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.AppendBulk([][]string{
		{"ID", cycle.ID},
		{"Name", cycle.Name},
		{"Start", cycle.StartDate},
		{"End", cycle.EndDate},
		{"Active", strconv.FormatBool(cycle.IsActive)},
		{"Locked", strconv.FormatBool(cycle.IsLocked)},
	})
	table.Render()
}

func renderCreatedUser(w io.Writer, created *dto.CreateUserResponse) {
	fmt.Fprintf(w, "created %s <%s> as %s\n", created.User.Name, created.User.Email, created.User.Role)
	fmt.Fprintf(w, "temporary password: %s\n", created.TempPassword)
}
