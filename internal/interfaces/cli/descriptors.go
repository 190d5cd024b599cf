package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/KeyIP-Descriptors/internal/domain/descriptor"
)

func newDescriptorsCmd() *cobra.Command {
	var include, exclude []string
	cmd := &cobra.Command{
		Use:   "descriptors",
		Short: "List the descriptors a run computes, in column order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := *cliCtx.Config
			if cmd.Flags().Changed("include") {
				cfg.Registry.Include = include
			}
			if cmd.Flags().Changed("exclude") {
				cfg.Registry.Exclude = exclude
			}
			reg, err := buildRegistry(&cfg)
			if err != nil {
				return err
			}
			return PrintResult(cmd, newDescriptorList(reg))
		},
	}
	cmd.Flags().StringSliceVar(&include, "include", nil, "list only these descriptors")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "leave out these descriptors")
	return cmd
}

// DescriptorInfo is one registry entry.
type DescriptorInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// DescriptorList is the printed result of the descriptors command.
type DescriptorList struct {
	Version     string           `json:"version"`
	Fingerprint string           `json:"fingerprint"`
	Count       int              `json:"count"`
	Descriptors []DescriptorInfo `json:"descriptors"`
}

func newDescriptorList(reg *descriptor.Registry) *DescriptorList {
	entries := reg.Entries()
	list := &DescriptorList{
		Version:     reg.Version(),
		Fingerprint: reg.Fingerprint(),
		Count:       len(entries),
		Descriptors: make([]DescriptorInfo, len(entries)),
	}
	for i, e := range entries {
		list.Descriptors[i] = DescriptorInfo{Name: e.Name, Description: e.Description}
	}
	return list
}

func (l *DescriptorList) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "registry %s: %d descriptors\n", l.Version, l.Count)
	for _, d := range l.Descriptors {
		sb.WriteString(d.Name)
		sb.WriteString("\n")
	}
	return sb.String()
}

func (l *DescriptorList) TableHeaders() []string { return []string{"#", "NAME", "DESCRIPTION"} }

func (l *DescriptorList) TableRows() [][]string {
	rows := make([][]string, len(l.Descriptors))
	for i, d := range l.Descriptors {
		rows[i] = []string{strconv.Itoa(i + 1), d.Name, d.Description}
	}
	return rows
}

//Personal.AI order the ending
