package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/buildkite/shellwords"
	"github.com/google/uuid"
	"github.com/rankeditor/backend/internal/application/rankedit"
	"github.com/rankeditor/backend/internal/domain/roster"
	"github.com/rankeditor/backend/internal/domain/shared"
	"github.com/rodaine/table"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const prompt = "rankedit> "

var errQuit = errors.New("quit")

type shellCommand struct {
	usage   string
	help    string
	minArgs int
	run     func(ctx context.Context, args []string) error
}

// shell is a line-oriented front end over rankedit.Service. Ranks are
// referenced by name (case-insensitive) or by position as #N or #N.M.
type shell struct {
	svc      *rankedit.Service
	term     *term.Terminal
	out      io.Writer
	logger   *zap.Logger
	commands map[string]*shellCommand
}

// console joins the input and output sides of a session
type console struct {
	io.Reader
	io.Writer
}

// lfReader turns LF into the CR a terminal sends for Enter, so piped
// scripts drive the same line editor as an interactive session.
type lfReader struct {
	r io.Reader
}

func (l lfReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	for i, b := range p[:n] {
		if b == '\n' {
			p[i] = '\r'
		}
	}
	return n, err
}

func newShell(svc *rankedit.Service, in io.Reader, out io.Writer, logger *zap.Logger) *shell {
	t := term.NewTerminal(console{Reader: lfReader{r: in}, Writer: out}, prompt)
	s := &shell{svc: svc, term: t, out: t, logger: logger}
	s.commands = map[string]*shellCommand{
		"list":    {usage: "list", help: "show the roster", run: s.list},
		"show":    {usage: "show <rank>", help: "show a rank's stations, vehicles and outfits", minArgs: 1, run: s.show},
		"add":     {usage: "add <name> [salary] [points]", help: "append a rank", minArgs: 1, run: s.add},
		"band":    {usage: "band <parent> <name> [salary] [points]", help: "append a pay band to a rank", minArgs: 2, run: s.band},
		"promote": {usage: "promote <pay band> [position]", help: "turn a pay band into a rank", minArgs: 1, run: s.promote},
		"remove":  {usage: "remove <rank>", help: "remove a rank or pay band", minArgs: 1, run: s.remove},
		"clone":   {usage: "clone <rank>", help: "duplicate a rank or pay band", minArgs: 1, run: s.clone},
		"move":    {usage: "move <rank> <position>", help: "move a rank within its list", minArgs: 2, run: s.move},
		"clear":   {usage: "clear", help: "remove every rank", run: s.clear},
		"copy":    {usage: "copy <stations|vehicles|outfits> <source> <target>... [--overwrite]", help: "copy a collection to other ranks", minArgs: 3, run: s.copy},
		"outfit":  {usage: "outfit <add|remove> <rank> <outfit>...", help: "add or remove outfits", minArgs: 3, run: s.outfit},
		"station": {usage: "station <rank> <name>...", help: "assign stations", minArgs: 2, run: s.station},
		"vehicle": {usage: "vehicle <rank> <model> [display name] [agency]", help: "add a vehicle", minArgs: 2, run: s.vehicle},
		"rename":  {usage: "rename <rank> <name>", help: "rename a rank", minArgs: 2, run: s.rename},
		"salary":  {usage: "salary <rank> <amount>", help: "set a rank's salary", minArgs: 2, run: s.salary},
		"points":  {usage: "points <rank> <amount>", help: "set a rank's required points", minArgs: 2, run: s.points},
		"undo":    {usage: "undo", help: "undo the last edit", run: s.undo},
		"redo":    {usage: "redo", help: "redo the last undone edit", run: s.redo},
		"history": {usage: "history", help: "show the undo and redo stacks", run: s.history},
		"help":    {usage: "help", help: "list commands", run: s.help},
		"quit":    {usage: "quit", help: "leave the editor", run: func(context.Context, []string) error { return errQuit }},
	}
	s.commands["exit"] = s.commands["quit"]
	s.commands["ls"] = s.commands["list"]
	return s
}

// Run reads commands from the terminal until EOF, quit, or ctx is done
func (s *shell) Run(ctx context.Context) error {
	for {
		line, err := s.term.ReadLine()
		if err != nil {
			fmt.Fprintln(s.out)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return nil
		}
		if err := s.exec(ctx, line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

func (s *shell) exec(ctx context.Context, line string) error {
	parts, err := shellwords.SplitPosix(line)
	if err != nil {
		return err
	}
	if len(parts) == 0 {
		return nil
	}

	cmd, ok := s.commands[strings.ToLower(parts[0])]
	if !ok {
		return fmt.Errorf("unknown command %q, try help", parts[0])
	}
	args := parts[1:]
	if len(args) < cmd.minArgs {
		return fmt.Errorf("usage: %s", cmd.usage)
	}

	s.logger.Debug("shell command", zap.Strings("args", parts))
	return cmd.run(ctx, args)
}

func (s *shell) done() {
	if desc, ok := s.svc.History().UndoDescription(); ok {
		fmt.Fprintf(s.out, "ok: %s\n", desc)
	}
}

// resolve finds a rank by #N / #N.M position or by case-insensitive name
func (s *shell) resolve(ref string) (*roster.Rank, error) {
	ranks := s.svc.Roster().Ranks()
	if pos, ok := strings.CutPrefix(ref, "#"); ok {
		top, band, hasBand := strings.Cut(pos, ".")
		i, err := strconv.Atoi(top)
		if err != nil || i < 1 || i > len(ranks) {
			return nil, rankRefNotFound(ref)
		}
		rank := ranks[i-1]
		if !hasBand {
			return rank, nil
		}
		j, err := strconv.Atoi(band)
		if err != nil || j < 1 || j > len(rank.PayBands) {
			return nil, rankRefNotFound(ref)
		}
		return rank.PayBands[j-1], nil
	}

	key := roster.FoldKey(ref)
	for _, rank := range ranks {
		if roster.FoldKey(rank.Name) == key {
			return rank, nil
		}
		for _, pb := range rank.PayBands {
			if roster.FoldKey(pb.Name) == key {
				return pb, nil
			}
		}
	}
	return nil, rankRefNotFound(ref)
}

func rankRefNotFound(ref string) error {
	return shared.NewDomainErrorf(rankedit.CodeRankNotFound, "rank '%s' not found", ref)
}

func (s *shell) resolveAll(refs []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(refs))
	for _, ref := range refs {
		rank, err := s.resolve(ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, rank.ID)
	}
	return ids, nil
}

// rankParams parses "<name> [salary] [points]"
func rankParams(args []string) (roster.RankParams, error) {
	p := roster.RankParams{Name: args[0]}
	var err error
	if len(args) > 1 {
		if p.Salary, err = strconv.Atoi(args[1]); err != nil {
			return p, fmt.Errorf("invalid salary %q", args[1])
		}
	}
	if len(args) > 2 {
		if p.RequiredPoints, err = strconv.Atoi(args[2]); err != nil {
			return p, fmt.Errorf("invalid points %q", args[2])
		}
	}
	return p, nil
}

// position parses a 1-based position into a list index
func position(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q", arg)
	}
	return n - 1, nil
}

func (s *shell) list(context.Context, []string) error {
	t := table.New("#", "Rank", "Salary", "Points", "Stations", "Vehicles", "Outfits").WithWriter(s.out)
	for i, rank := range s.svc.Roster().Ranks() {
		addRankRow(t, strconv.Itoa(i+1), rank.Name, rank)
		for j, pb := range rank.PayBands {
			addRankRow(t, fmt.Sprintf("%d.%d", i+1, j+1), "  "+pb.Name, pb)
		}
	}
	t.Print()
	return nil
}

func addRankRow(t table.Table, pos, name string, r *roster.Rank) {
	t.AddRow(pos, name, r.Salary, r.RequiredPoints, len(r.Stations), len(r.Vehicles), len(r.Outfits))
}

func (s *shell) show(_ context.Context, args []string) error {
	rank, err := s.resolve(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "%s (salary %d, points %d)\n", rank.Name, rank.Salary, rank.RequiredPoints)

	stations := table.New("Station", "Zones", "Style", "Vehicles", "Outfits").WithWriter(s.out)
	for _, st := range rank.Stations {
		stations.AddRow(st.StationName, strings.Join(st.Zones, ", "), st.Style, len(st.Vehicles), strings.Join(st.Outfits, ", "))
	}
	stations.Print()

	vehicles := table.New("Model", "Name", "Agency").WithWriter(s.out)
	for _, v := range rank.Vehicles {
		vehicles.AddRow(v.Model, v.DisplayName, v.Agency)
	}
	vehicles.Print()

	fmt.Fprintf(s.out, "Outfits: %s\n", strings.Join(rank.Outfits, ", "))
	return nil
}

func (s *shell) add(ctx context.Context, args []string) error {
	p, err := rankParams(args)
	if err != nil {
		return err
	}
	if _, err := s.svc.AddRank(ctx, p, s.svc.Roster().Len()); err != nil {
		return err
	}
	s.done()
	return nil
}

func (s *shell) band(ctx context.Context, args []string) error {
	parent, err := s.resolve(args[0])
	if err != nil {
		return err
	}
	p, err := rankParams(args[1:])
	if err != nil {
		return err
	}
	if _, err := s.svc.AddPayBand(ctx, parent.ID, p, len(parent.PayBands)); err != nil {
		return err
	}
	s.done()
	return nil
}

func (s *shell) promote(ctx context.Context, args []string) error {
	rank, err := s.resolve(args[0])
	if err != nil {
		return err
	}
	index := s.svc.Roster().Len()
	if len(args) > 1 {
		if index, err = position(args[1]); err != nil {
			return err
		}
	}
	if err := s.svc.PromoteRank(ctx, rank.ID, index); err != nil {
		return err
	}
	s.done()
	return nil
}

func (s *shell) remove(ctx context.Context, args []string) error {
	rank, err := s.resolve(args[0])
	if err != nil {
		return err
	}
	if err := s.svc.RemoveRank(ctx, rank.ID); err != nil {
		return err
	}
	s.done()
	return nil
}

func (s *shell) clone(ctx context.Context, args []string) error {
	rank, err := s.resolve(args[0])
	if err != nil {
		return err
	}
	if _, err := s.svc.CloneRank(ctx, rank.ID); err != nil {
		return err
	}
	s.done()
	return nil
}

func (s *shell) move(ctx context.Context, args []string) error {
	rank, err := s.resolve(args[0])
	if err != nil {
		return err
	}
	index, err := position(args[1])
	if err != nil {
		return err
	}
	if err := s.svc.MoveRank(ctx, rank.ID, index); err != nil {
		return err
	}
	s.done()
	return nil
}

func (s *shell) clear(ctx context.Context, _ []string) error {
	if err := s.svc.RemoveAllRanks(ctx); err != nil {
		return err
	}
	s.done()
	return nil
}

func (s *shell) copy(ctx context.Context, args []string) error {
	overwrite := slices.Contains(args, "--overwrite")
	args = slices.DeleteFunc(slices.Clone(args), func(a string) bool { return a == "--overwrite" })
	if len(args) < 3 {
		return fmt.Errorf("usage: %s", s.commands["copy"].usage)
	}

	kind := rankedit.CollectionKind(strings.ToLower(args[0]))
	source, err := s.resolve(args[1])
	if err != nil {
		return err
	}
	targets, err := s.resolveAll(args[2:])
	if err != nil {
		return err
	}

	if len(targets) == 1 {
		err = s.svc.Copy(ctx, kind, source.ID, targets[0], overwrite)
	} else {
		err = s.svc.CopyToMany(ctx, kind, source.ID, targets, overwrite)
	}
	if err != nil {
		return err
	}
	s.done()
	return nil
}

func (s *shell) outfit(ctx context.Context, args []string) error {
	rank, err := s.resolve(args[1])
	if err != nil {
		return err
	}
	switch strings.ToLower(args[0]) {
	case "add":
		err = s.svc.AddOutfits(ctx, rank.ID, args[2:])
	case "remove", "rm":
		err = s.svc.RemoveOutfits(ctx, rank.ID, args[2:])
	default:
		return fmt.Errorf("usage: %s", s.commands["outfit"].usage)
	}
	if err != nil {
		return err
	}
	s.done()
	return nil
}

func (s *shell) station(ctx context.Context, args []string) error {
	rank, err := s.resolve(args[0])
	if err != nil {
		return err
	}
	if err := s.svc.AddStations(ctx, rank.ID, args[1:]); err != nil {
		return err
	}
	s.done()
	return nil
}

func (s *shell) vehicle(ctx context.Context, args []string) error {
	rank, err := s.resolve(args[0])
	if err != nil {
		return err
	}
	model, display, agency := args[1], args[1], ""
	if len(args) > 2 {
		display = args[2]
	}
	if len(args) > 3 {
		agency = args[3]
	}
	if err := s.svc.AddVehicles(ctx, rank.ID, []*roster.Vehicle{roster.NewVehicle(model, display, agency)}); err != nil {
		return err
	}
	s.done()
	return nil
}

func (s *shell) rename(ctx context.Context, args []string) error {
	rank, err := s.resolve(args[0])
	if err != nil {
		return err
	}
	if err := s.svc.Rename(ctx, rank.ID, strings.Join(args[1:], " ")); err != nil {
		return err
	}
	s.done()
	return nil
}

func (s *shell) salary(ctx context.Context, args []string) error {
	return s.setInt(ctx, args, s.svc.SetSalary)
}

func (s *shell) points(ctx context.Context, args []string) error {
	return s.setInt(ctx, args, s.svc.SetRequiredPoints)
}

func (s *shell) setInt(ctx context.Context, args []string, set func(context.Context, uuid.UUID, int) error) error {
	rank, err := s.resolve(args[0])
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid number %q", args[1])
	}
	if err := set(ctx, rank.ID, n); err != nil {
		return err
	}
	s.done()
	return nil
}

func (s *shell) undo(ctx context.Context, _ []string) error {
	desc, _ := s.svc.History().UndoDescription()
	ok, err := s.svc.Undo(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(s.out, "nothing to undo")
		return nil
	}
	fmt.Fprintf(s.out, "undone: %s\n", desc)
	return nil
}

func (s *shell) redo(ctx context.Context, _ []string) error {
	desc, _ := s.svc.History().RedoDescription()
	ok, err := s.svc.Redo(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(s.out, "nothing to redo")
		return nil
	}
	fmt.Fprintf(s.out, "redone: %s\n", desc)
	return nil
}

func (s *shell) history(context.Context, []string) error {
	h := s.svc.History()
	t := table.New("Stack", "#", "Edit").WithWriter(s.out)
	for i, desc := range h.UndoDescriptions() {
		t.AddRow("undo", i+1, desc)
	}
	for i, desc := range h.RedoDescriptions() {
		t.AddRow("redo", i+1, desc)
	}
	t.Print()
	fmt.Fprintf(s.out, "%d/%d undo slots used\n", h.UndoCount(), h.Capacity())
	return nil
}

func (s *shell) help(context.Context, []string) error {
	names := make([]string, 0, len(s.commands))
	for name, cmd := range s.commands {
		if name == "exit" || name == "ls" {
			continue
		}
		names = append(names, cmd.usage)
	}
	slices.Sort(names)

	t := table.New("Command", "Description").WithWriter(s.out)
	for _, usage := range names {
		name, _, _ := strings.Cut(usage, " ")
		t.AddRow(usage, s.commands[name].help)
	}
	t.Print()
	return nil
}
