package command

import "fmt"

// Job is one channel to start: where, the sample barcode, and the path of
// the test profile on the server host. The path is passed through as is.
type Job struct {
	Target  Target
	Barcode string
	Payload string
}

// Backup controls where and how the server archives the data of a started test.
type Backup struct {
	Dir                  string
	RemoteDir            string
	FileNameType         int
	CustomFileName       string
	AddTimeWhenRepeat    bool
	CreateDirByDate      bool
	FileType             int
	BackupOnTime         bool
	BackupOnTimeInterval int
	BackupFree           bool
}

// DefaultBackup returns the backup settings used by BTS clients: files named
// by barcode, written to dir, no scheduled backups.
func DefaultBackup(dir string) Backup {
	return Backup{
		Dir:                  dir,
		FileNameType:         1,
		FileType:             1,
		BackupOnTimeInterval: 720,
	}
}

func (b Backup) element() *Element {
	return NewElement("backup").
		Attr("backupdir", b.Dir).
		Attr("remotedir", b.RemoteDir).
		IntAttr("filenametype", b.FileNameType).
		Attr("customfilename", b.CustomFileName).
		Attr("addtimewhenrepeat", boolFlag(b.AddTimeWhenRepeat)).
		Attr("createdirbydate", boolFlag(b.CreateDirByDate)).
		IntAttr("filetype", b.FileType).
		Attr("backupontime", boolFlag(b.BackupOnTime)).
		IntAttr("backupontimeinterval", b.BackupOnTimeInterval).
		Attr("backupfree", boolFlag(b.BackupFree))
}

// Start builds a start command for jobs. The backup directive is always
// appended to the list after the channel elements and is not counted.
func Start(jobs []Job, backup Backup) (*Command, error) {
	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoTargets, VerbStart)
	}

	children := make([]*Element, 0, len(jobs)+1)
	for _, j := range jobs {
		children = append(children, j.Target.element("start").
			Attr("barcode", j.Barcode).
			SetText(j.Payload))
	}

	l := list(children, len(jobs))
	l.Append(backup.element())

	return New(VerbStart, l), nil
}
