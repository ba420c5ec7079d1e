package discogs

const sampleDump = `<?xml version="1.0" encoding="UTF-8"?>
<releases>
  <release id="1" status="Accepted">
    <artists>
      <artist><id>1</id><name>The Persuader</name></artist>
    </artists>
    <title>Stockholm</title>
    <labels>
      <label name="Svek" catno="SK032" id="5"/>
    </labels>
    <formats>
      <format name="Vinyl" qty="2" text=""/>
    </formats>
    <genres><genre>Electronic</genre></genres>
    <styles><style>Deep House</style></styles>
    <country>Sweden</country>
    <released>1999-03-00</released>
    <data_quality>Needs Vote</data_quality>
    <tracklist>
      <track><position>A</position><title>Östermalm</title><duration>4:45</duration></track>
      <track><position>B1</position><title>Vasastaden</title><duration>6:11</duration></track>
    </tracklist>
    <videos>
      <video src="https://www.youtube.com/watch?v=x" duration="290" embed="true"><title>Östermalm</title></video>
    </videos>
  </release>
  <release id="2" status="Accepted">
    <artists><artist><id>2</id><name>Mr. James Barth &amp; A.D.</name></artist></artists>
    <title>Knockin' Boots Vol 2</title>
    <labels><label name="Svek" catno="SK 033" id="5"/></labels>
    <formats><format name="Vinyl" qty="1"/></formats>
    <data_quality>Correct</data_quality>
    <tracklist>
      <track><position>A</position><title>Knockin' Boots</title></track>
    </tracklist>
  </release>
</releases>
`
